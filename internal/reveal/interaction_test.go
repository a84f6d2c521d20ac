package reveal_test

import (
	"math/rand/v2"
	"testing"

	"github.com/serroba/love-letter-go/internal/reveal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteraction_Initial(t *testing.T) {
	i := reveal.NewInteraction(nil)

	assert.Zero(t, i.Declines())
	assert.False(t, i.Accepted())
	assert.Equal(t, reveal.Offset{}, i.Offset())
	assert.InDelta(t, 1.0, i.YesScale(), 1e-9)
	assert.InDelta(t, 1.0, i.NoScale(), 1e-9)
	assert.True(t, i.ShowNo())
	assert.Empty(t, i.Plea())
}

func TestInteraction_Decline(t *testing.T) {
	i := reveal.NewInteraction(rand.New(rand.NewPCG(1, 2)))

	for n := 1; n <= 12; n++ {
		require.Equal(t, n, i.Decline())

		off := i.Offset()
		assert.LessOrEqual(t, off.X, reveal.OffsetRange)
		assert.GreaterOrEqual(t, off.X, -reveal.OffsetRange)
		assert.LessOrEqual(t, off.Y, reveal.OffsetRange)
		assert.GreaterOrEqual(t, off.Y, -reveal.OffsetRange)
		assert.InDelta(t, 1+0.2*float64(n), i.YesScale(), 1e-9)
		assert.Equal(t, n < reveal.MaxDeclines, i.ShowNo())
	}

	assert.InDelta(t, 0.1, i.NoScale(), 1e-9)
}

func TestInteraction_NoScale(t *testing.T) {
	i := reveal.NewInteraction(nil)

	i.Decline()
	i.Decline()
	i.Decline()

	assert.InDelta(t, 0.7, i.NoScale(), 1e-9)
}

func TestInteraction_AcceptStopsDeclines(t *testing.T) {
	i := reveal.NewInteraction(nil)

	i.Decline()
	i.Accept()
	i.Accept()

	assert.True(t, i.Accepted())
	assert.Equal(t, 1, i.Decline())
}

func TestPlea(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "Tu es sûr(e) ? 😏"},
		{6, "Oups, le bouton bouge !"},
		{10, "Dis ouiiiii s'il te plaît 🙏"},
		{25, "Dis ouiiiii s'il te plaît 🙏"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, reveal.Plea(tt.n), "n=%d", tt.n)
	}
}

func TestSized(t *testing.T) {
	tests := []struct {
		name  string
		label string
		scale float64
		want  string
	}{
		{name: "unchanged at scale one", label: reveal.AcceptLabel, scale: 1, want: "OUI 💚"},
		{name: "padded when grown", label: reveal.AcceptLabel, scale: 1.4, want: " OUI 💚 "},
		{name: "truncated when shrunk", label: reveal.DeclineLabel, scale: 0.6, want: "NON"},
		{name: "keeps one rune at the floor", label: reveal.DeclineLabel, scale: 0.1, want: "N"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reveal.Sized(tt.label, tt.scale))
		})
	}
}
