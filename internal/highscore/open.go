// internal/highscore/open.go
//
// Backend selection: sqlite (default), redis or memory.

package highscore

import (
	"context"
	"fmt"

	"github.com/kannnkannn-debug/material-hero/internal/database"
)

// Backend selects and configures a Store.
type Backend struct {
	Kind          string // sqlite | redis | memory
	DBPath        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open builds the configured store. The returned func releases it.
func Open(ctx context.Context, b Backend) (Store, func(), error) {
	switch b.Kind {
	case "memory":
		return NewMemoryStore(), func() {}, nil
	case "redis":
		rs, err := NewRedisStore(ctx, b.RedisAddr, b.RedisPassword, b.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() { _ = rs.Close() }, nil
	case "sqlite", "":
		db, err := database.Open(b.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return NewSQLStore(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("highscore: unknown backend %q", b.Kind)
	}
}
