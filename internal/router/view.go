// Package router decides what a visitor sees for a given link fragment.
package router

import "github.com/serroba/love-letter-go/internal/letter"

// Mode is the screen currently shown.
type Mode string

const (
	// ModeCompose shows the letter composer.
	ModeCompose Mode = "compose"
	// ModeLoading waits for a store-backed letter.
	ModeLoading Mode = "loading"
	// ModeReveal shows the Valentine question and, once accepted, the letter.
	ModeReveal Mode = "reveal"
)

// AdvisoryLinkInvalid is shown when a store-backed link cannot be resolved.
const AdvisoryLinkInvalid = "Lien invalide ou expiré."

// View is the routing state: which screen to show, and with what.
type View struct {
	Mode     Mode           `json:"mode"`
	Letter   *letter.Letter `json:"letter,omitempty"`
	ID       letter.ID      `json:"id,omitempty"`
	Advisory string         `json:"advisory,omitempty"`
}

// ComposeView is the initial state and the fallback for unusable links.
func ComposeView() View {
	return View{Mode: ModeCompose}
}

func revealView(l letter.Letter, id letter.ID) View {
	return View{Mode: ModeReveal, Letter: &l, ID: id}
}

func loadingView(id letter.ID) View {
	return View{Mode: ModeLoading, ID: id}
}

func failedView() View {
	return View{Mode: ModeCompose, Advisory: AdvisoryLinkInvalid}
}
