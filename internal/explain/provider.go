// internal/explain/provider.go
//
// Explanation provider: a short, child-friendly reason why an item's material
// belongs to its group.
//
// Contract:
//   - Explain never returns an error. Missing credentials, request failures,
//     timeouts and empty answers all map to a fixed fallback sentence.
//   - A missing API key short-circuits: no client is built, no request is sent.
//   - Every request runs under its own timeout (DefaultTimeout unless configured).

package explain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kannnkannn-debug/material-hero/internal/catalog"
	"github.com/kannnkannn-debug/material-hero/internal/metrics"
)

const (
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 8 * time.Second
)

// Fallback sentences shown instead of an explanation.
const (
	FallbackNoKey = "ไม่พบ API Key กรุณาเชื่อมต่ออินเทอร์เน็ตหรือติดต่อผู้ดูแลระบบ"
	FallbackEmpty = "ขออภัย ศาสตราจารย์กำลังยุ่งอยู่ ลองใหม่อีกครั้งนะจ๊ะ"
	FallbackError = "เกิดข้อผิดพลาดในการเรียกศาสตราจารย์"
)

// Provider turns an item into an explanation string.
type Provider interface {
	Explain(ctx context.Context, item catalog.Item) string
}

// Generator is the raw text-generation call behind a Provider.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// AI explains items through a Generator.
type AI struct {
	gen     Generator // nil means no credentials
	model   string
	timeout time.Duration
}

// New builds a provider around gen. A nil gen behaves as "no API key".
func New(gen Generator, model string, timeout time.Duration) *AI {
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AI{gen: gen, model: model, timeout: timeout}
}

// Explain implements Provider.
func (a *AI) Explain(ctx context.Context, item catalog.Item) string {
	if a.gen == nil {
		metrics.Explanations.WithLabelValues("no_key").Inc()
		return FallbackNoKey
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.gen.Generate(ctx, a.model, Prompt(item))
	if err != nil {
		log.Error().Err(err).Int("item", item.ID).Str("model", a.model).Msg("explanation request failed")
		metrics.Explanations.WithLabelValues("error").Inc()
		return FallbackError
	}
	text = strings.TrimSpace(text)
	if text == "" {
		log.Warn().Int("item", item.ID).Msg("explanation came back empty")
		metrics.Explanations.WithLabelValues("empty").Inc()
		return FallbackEmpty
	}
	metrics.Explanations.WithLabelValues("ok").Inc()
	return text
}

// Prompt builds the request text for item.
func Prompt(item catalog.Item) string {
	var b strings.Builder
	b.WriteString("คุณคือ \"ศาสตราจารย์วิทยาศาสตร์\" ใจดีที่สอนนักเรียนชั้นประถมศึกษาปีที่ 4\n")
	fmt.Fprintf(&b, "อธิบายสั้นๆ ว่าทำไม \"%s\" ที่ทำจาก \"%s\" จึงอยู่ในกลุ่มวัสดุ \"%s\"\n\n",
		item.Name, item.Material, item.Group)
	b.WriteString("ข้อกำหนด:\n")
	b.WriteString("- ใช้ภาษาง่ายๆ สำหรับเด็กอายุ 9-10 ปี\n")
	b.WriteString("- บอกสมบัติเด่นของวัสดุกลุ่มนี้ (โลหะแข็งแรงและนำความร้อน, พอลิเมอร์ยืดหยุ่นและเบา, เซรามิกทนความร้อนแต่เปราะ)\n")
	b.WriteString("- ยาวไม่เกิน 2-3 ประโยค\n")
	b.WriteString("- น้ำเสียงสนุกและให้กำลังใจ\n")
	return b.String()
}
