// internal/names/names.go
//
// Playful nicknames for players who do not want to type one.

package names

import "math/rand/v2"

var adjectives = []string{
	"ฉลาด", "ว่องไว", "ใจดี", "กล้าหาญ", "ขี้เล่น",
	"ยอดนักคิด", "จอมพลัง", "น่ารัก", "สดใส", "อัจฉริยะ",
}

var nouns = []string{
	"แมวน้ำ", "สิงโต", "หุ่นยนต์", "นักวิทย์", "เพนกวิน",
	"โลมา", "จรวด", "ดาวเคราะห์", "ไดโนเสาร์", "นกฮูก",
}

// Random returns noun+adjective with no separator. A nil r uses the global source.
func Random(r *rand.Rand) string {
	if r == nil {
		return nouns[rand.IntN(len(nouns))] + adjectives[rand.IntN(len(adjectives))]
	}
	return nouns[r.IntN(len(nouns))] + adjectives[r.IntN(len(adjectives))]
}
