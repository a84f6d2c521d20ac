package reveal

import (
	"context"
	"time"
)

const (
	// TypingInterval is the delay between two typed characters.
	TypingInterval = 50 * time.Millisecond

	// EnvelopeDelay is the pause between acceptance and the letter opening.
	EnvelopeDelay = time.Second
)

// Typewriter reveals a message one character at a time.
type Typewriter struct {
	runes []rune
	pos   int
}

func NewTypewriter(message string) *Typewriter {
	return &Typewriter{runes: []rune(message)}
}

// Next types one more character and returns the visible text. ok is false
// once the whole message is visible.
func (t *Typewriter) Next() (text string, ok bool) {
	if t.pos >= len(t.runes) {
		return string(t.runes), false
	}

	t.pos++

	return string(t.runes[:t.pos]), true
}

// Text returns the currently visible text.
func (t *Typewriter) Text() string {
	return string(t.runes[:t.pos])
}

func (t *Typewriter) Done() bool {
	return t.pos >= len(t.runes)
}

// Play types the remaining message, calling emit with the visible text after
// each character. It returns ctx.Err() if cancelled before the end.
func (t *Typewriter) Play(ctx context.Context, interval time.Duration, emit func(string)) error {
	if interval <= 0 {
		interval = TypingInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !t.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			text, _ := t.Next()
			emit(text)
		}
	}

	return nil
}
