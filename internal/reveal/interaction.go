package reveal

import (
	"math/rand/v2"
	"sync"
)

// MaxDeclines is the number of declines after which the decline button hides.
const MaxDeclines = 10

// OffsetRange bounds the decline button displacement on each axis.
const OffsetRange = 150.0

// pleas are shown after each decline, in order. The last one repeats.
var pleas = [MaxDeclines]string{
	"Tu es sûr(e) ? 😏",
	"Réfléchis encore ❤️",
	"Allez dis oui 🥺",
	"Mon cœur ne tiendra pas 💔",
	"Vraiment ? 😢",
	"Oups, le bouton bouge !",
	"Impossible de dire non maintenant ✨",
	"C'est ton dernier mot ?",
	"Regarde comme le bouton OUI est beau !",
	"Dis ouiiiii s'il te plaît 🙏",
}

// Offset is the decline button displacement from its resting place.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Interaction holds the state of the accept/decline question.
// It is safe for concurrent use.
type Interaction struct {
	mu       sync.Mutex
	rng      *rand.Rand
	declines int
	accepted bool
	offset   Offset
}

// NewInteraction creates an unanswered Interaction. A nil rng uses the
// package-level random source.
func NewInteraction(rng *rand.Rand) *Interaction {
	return &Interaction{rng: rng}
}

func (i *Interaction) random() float64 {
	if i.rng == nil {
		return rand.Float64()
	}

	return i.rng.Float64()
}

// Decline records a refusal and moves the decline button. It returns the new
// decline count. Declines after acceptance are ignored.
func (i *Interaction) Decline() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.accepted {
		return i.declines
	}

	i.declines++
	i.offset = Offset{
		X: i.random()*2*OffsetRange - OffsetRange,
		Y: i.random()*2*OffsetRange - OffsetRange,
	}

	return i.declines
}

// Accept records acceptance. It is idempotent.
func (i *Interaction) Accept() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.accepted = true
}

func (i *Interaction) Accepted() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.accepted
}

func (i *Interaction) Declines() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.declines
}

// Offset returns the current decline button displacement.
func (i *Interaction) Offset() Offset {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.offset
}

// YesScale grows the accept button by 20% per decline.
func (i *Interaction) YesScale() float64 {
	return 1 + 0.2*float64(i.Declines())
}

// NoScale shrinks the decline button by 10% per decline, down to 0.1.
func (i *Interaction) NoScale() float64 {
	return max(0.1, 1-0.1*float64(i.Declines()))
}

// ShowNo reports whether the decline button is still offered.
func (i *Interaction) ShowNo() bool {
	return i.Declines() < MaxDeclines
}

// Plea returns the phrase for the current decline count, or "" before the
// first decline.
func (i *Interaction) Plea() string {
	return Plea(i.Declines())
}

// Plea returns the phrase shown after n declines.
func Plea(n int) string {
	if n <= 0 {
		return ""
	}

	return pleas[min(n, MaxDeclines)-1]
}
