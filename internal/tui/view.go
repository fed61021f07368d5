// internal/tui/view.go
//
// Rendering for each screen. Pure functions of the model's snapshot.

package tui

import (
	"fmt"
	"strings"

	"github.com/kannnkannn-debug/material-hero/internal/game"
	"github.com/kannnkannn-debug/material-hero/internal/session"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render("Material Hero"))
	b.WriteString("\n\n")

	switch m.snap.Screen {
	case session.ScreenLogin:
		b.WriteString(m.viewLogin())
	case session.ScreenStart:
		b.WriteString(m.viewMenu())
	case session.ScreenPlaying:
		b.WriteString(m.viewPlaying())
	case session.ScreenGameOver:
		b.WriteString(m.viewGameOver())
	}

	if m.errMsg != "" {
		b.WriteString("\n" + styleError.Render(m.errMsg) + "\n")
	}
	return b.String()
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("ใส่ชื่อผู้เล่น"))
	b.WriteString("\n\n" + m.input.View() + "\n\n")
	hint := "tab สุ่มชื่อ • esc ออก"
	if strings.TrimSpace(m.input.Value()) != "" {
		hint = "enter เริ่ม • " + hint
	}
	b.WriteString(styleSubtle.Render(hint))
	return b.String()
}

func (m Model) viewMenu() string {
	var b strings.Builder
	fmt.Fprintf(&b, "สวัสดี %s\n", styleItem.Render(m.snap.Player))
	fmt.Fprintf(&b, "คะแนนสูงสุด: %d\n\n", m.snap.HighScore)
	b.WriteString("ทายว่าสิ่งของทำจากวัสดุอะไร แล้ววัสดุนั้นอยู่กลุ่มไหน\n\n")
	b.WriteString(styleSubtle.Render("enter เริ่มเกม • q ออกจากระบบ • esc ออก"))
	return b.String()
}

func (m Model) viewPlaying() string {
	r := m.snap.Round
	if r == nil {
		return ""
	}
	var b strings.Builder
	hearts := styleHeart.Render(strings.Repeat("♥", r.Lives)) + styleSubtle.Render(strings.Repeat("♡", r.MaxLives-r.Lives))
	fmt.Fprintf(&b, "รอบ %d • คะแนน %d • %s • เหลือ %d ชิ้น\n\n", r.Round, r.Score, hearts, r.PoolLeft)
	fmt.Fprintf(&b, "สิ่งของ: %s\n", styleItem.Render(r.ItemName))

	switch r.Phase {
	case game.PhaseMaterial:
		b.WriteString("\nทำจากวัสดุอะไร?\n")
		for i, o := range r.Options {
			b.WriteString(styleOption.Render(fmt.Sprintf("%s %s", styleKey.Render(fmt.Sprintf("[%d]", i+1)), o)) + "\n")
		}
	case game.PhaseGroup:
		fmt.Fprintf(&b, "วัสดุ: %s\n", styleCorrect.Render(r.Material))
		b.WriteString("\nอยู่ในกลุ่มวัสดุใด?\n")
		for i, g := range r.Groups {
			b.WriteString(styleOption.Render(fmt.Sprintf("%s %s", styleKey.Render(fmt.Sprintf("[%d]", i+1)), groupLabels[g])) + "\n")
		}
	case game.PhaseResolved:
		b.WriteString(stylePanel.Render(m.feedback(r)))
		b.WriteString("\n" + styleSubtle.Render("enter ไปต่อ"))
	}
	return b.String()
}

func (m Model) feedback(r *session.RoundView) string {
	var b strings.Builder
	if r.Outcome == game.OutcomeSuccess {
		b.WriteString(styleCorrect.Render("ถูกต้อง! +10"))
	} else {
		b.WriteString(styleIncorrect.Render("ผิด!"))
	}
	if r.Answer != nil {
		fmt.Fprintf(&b, "\n%s ทำจาก %s (%s)", r.Answer.Name, r.Answer.Material, groupLabels[r.Answer.Group])
	}
	if r.Outcome == game.OutcomeFailure {
		switch {
		case r.Explanation.Loading:
			b.WriteString("\n" + styleSubtle.Render("กำลังขอคำอธิบาย..."))
		case r.Explanation.Text != "":
			b.WriteString("\n\n" + r.Explanation.Text)
		}
	}
	return b.String()
}

func (m Model) viewGameOver() string {
	res := m.snap.Result
	if res == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(styleHeader.Render("จบเกม"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "คะแนน: %d (%d ชิ้น)\n", res.FinalScore, res.ItemsAnswered)
	fmt.Fprintf(&b, "คะแนนสูงสุด: %d\n", res.HighScore)
	if res.NewRecord {
		b.WriteString("\n" + styleRecord.Render("สถิติใหม่!") + "\n")
	}
	b.WriteString("\n" + styleSubtle.Render("enter เล่นอีกครั้ง • q ออกจากระบบ • esc ออก"))
	return b.String()
}
