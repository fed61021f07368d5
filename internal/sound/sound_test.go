package sound

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToneFor(t *testing.T) {
	for _, c := range []Cue{CueClick, CueCorrect, CueWrong, CueGameOver} {
		tone, ok := ToneFor(c)
		require.True(t, ok, string(c))
		require.NotEmpty(t, tone.Steps)
		require.Positive(t, tone.DurationMs)
	}
	_, ok := ToneFor(CueNone)
	require.False(t, ok)
}

func TestBellRingsOnlyForBadNews(t *testing.T) {
	var buf bytes.Buffer
	b := Bell{W: &buf}
	b.Play(CueClick)
	b.Play(CueCorrect)
	require.Zero(t, buf.Len())
	b.Play(CueWrong)
	b.Play(CueGameOver)
	require.Equal(t, "\a\a", buf.String())
}
