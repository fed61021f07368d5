// internal/sound/sound.go
//
// Audio feedback cues.
//
// Cues are advisory: the engine reports which one fits an action and the
// presentation decides how (or whether) to play it. Each cue carries a small
// tone description so a browser client can synthesise it with an oscillator
// and a terminal client can map it to the bell.

package sound

import "io"

// Cue names a feedback sound.
type Cue string

const (
	CueNone     Cue = ""
	CueClick    Cue = "click"
	CueCorrect  Cue = "correct"
	CueWrong    Cue = "wrong"
	CueGameOver Cue = "gameover"
)

// Step is one frequency change, offset from the start of the tone.
type Step struct {
	AtMs int     `json:"atMs"`
	Hz   float64 `json:"hz"`
}

// Tone describes an oscillator envelope.
type Tone struct {
	Wave       string  `json:"wave"` // sine | sawtooth | triangle
	Steps      []Step  `json:"steps"`
	Gain       float64 `json:"gain"`
	DurationMs int     `json:"durationMs"`
	Glide      bool    `json:"glide"` // ramp between steps instead of jumping
}

var tones = map[Cue]Tone{
	// C5 → E5 → G5 arpeggio
	CueCorrect: {Wave: "sine", Gain: 0.1, DurationMs: 500, Steps: []Step{
		{AtMs: 0, Hz: 523.25}, {AtMs: 100, Hz: 659.25}, {AtMs: 200, Hz: 783.99},
	}},
	CueWrong: {Wave: "sawtooth", Gain: 0.1, DurationMs: 300, Glide: true, Steps: []Step{
		{AtMs: 0, Hz: 200}, {AtMs: 300, Hz: 100},
	}},
	CueClick: {Wave: "triangle", Gain: 0.05, DurationMs: 100, Steps: []Step{
		{AtMs: 0, Hz: 800},
	}},
	CueGameOver: {Wave: "triangle", Gain: 0.2, DurationMs: 1000, Glide: true, Steps: []Step{
		{AtMs: 0, Hz: 400}, {AtMs: 1000, Hz: 50},
	}},
}

// ToneFor returns the tone for c. The bool is false for CueNone or unknown cues.
func ToneFor(c Cue) (Tone, bool) {
	t, ok := tones[c]
	return t, ok
}

// Player plays cues. Implementations must not block the caller for long.
type Player interface {
	Play(Cue)
}

// Mute discards every cue.
type Mute struct{}

func (Mute) Play(Cue) {}

// Bell rings the terminal bell for the cues that need attention.
type Bell struct {
	W io.Writer
}

func (b Bell) Play(c Cue) {
	if c == CueWrong || c == CueGameOver {
		_, _ = io.WriteString(b.W, "\a")
	}
}
