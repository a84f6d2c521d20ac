package reveal

import (
	"fmt"
	"math"
	"strings"

	"github.com/serroba/love-letter-go/internal/letter"
)

const (
	AcceptLabel    = "OUI 💚"
	DeclineLabel   = "NON ❌"
	Celebration    = "Youpiii ! 🎉"
	EnvelopeTeaser = "Regarde ce que j'ai pour toi..."
	LoadingText    = "Chargement..."
	CreateOwnLabel = "Créer ma propre lettre"
)

// Question is the prompt shown to the recipient.
func Question(recipient string) string {
	return fmt.Sprintf("%s, Veux-tu être mon/ma Valentin(e) ? ❤️", recipient)
}

// DeclineCounter reports how many times the recipient tried to decline.
func DeclineCounter(n int) string {
	return fmt.Sprintf("Nombre d'essais pour dire non : %d 😅", n)
}

func Salutation(l letter.Letter) string {
	return fmt.Sprintf("Ma chère %s,", l.Recipient)
}

func Closing(l letter.Letter) string {
	return fmt.Sprintf("Pour toujours, %s ❤️", l.Sender)
}

// Sized renders a button label for a terminal at the given scale. Grown
// labels are padded on both sides; shrunk ones lose their trailing runes,
// keeping at least one.
func Sized(label string, scale float64) string {
	runes := []rune(label)
	width := int(math.Round(scale * float64(len(runes))))

	if width < len(runes) {
		return strings.TrimRight(string(runes[:max(1, width)]), " ")
	}

	pad := strings.Repeat(" ", (width-len(runes))/2)

	return pad + label + pad
}
