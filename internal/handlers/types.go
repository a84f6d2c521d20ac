package handlers

import (
	"time"

	"github.com/serroba/love-letter-go/internal/router"
)

// LetterBody carries the three letter fields.
type LetterBody struct {
	Sender    string `doc:"Who signs the letter"      example:"Alex"             json:"sender"    minLength:"1"`
	Recipient string `doc:"Who receives the letter"   example:"Sam"              json:"recipient" minLength:"1"`
	Message   string `doc:"The letter body"           example:"Tu es géniale ✨" json:"message"   minLength:"1"`
}

// CreateLetterRequest is the request body for composing a share link.
type CreateLetterRequest struct {
	Body struct {
		LetterBody

		Strategy string `doc:"How the letter travels in the link" enum:"token,store" json:"strategy,omitempty" required:"false"`
	}
}

// CreateLetterResponse is the composed share link.
type CreateLetterResponse struct {
	Headers struct {
		Location string `doc:"The share URL" header:"Location"`
	}
	Body struct {
		Strategy   string `doc:"Strategy used"                json:"strategy"   example:"token"`
		ID         string `doc:"Stored letter ID, store only" json:"id,omitempty"`
		Fragment   string `doc:"URL fragment, without '#'"    json:"fragment"`
		URL        string `doc:"The share URL"                json:"url"`
		ShareTitle string `doc:"Title for native sharing"     json:"shareTitle"`
		ShareText  string `doc:"Text for native sharing"      json:"shareText"`
	}
}

// GetLetterRequest fetches a stored letter.
type GetLetterRequest struct {
	ID string `doc:"The letter ID" example:"V1StGXR8_Z5jdHi6" maxLength:"128" path:"id"`
}

// GetLetterResponse is a stored letter.
type GetLetterResponse struct {
	Body struct {
		LetterBody

		ID        string    `json:"id"`
		CreatedAt time.Time `json:"createdAt"`
	}
}

// ResolveLinkRequest asks what a link fragment shows.
type ResolveLinkRequest struct {
	Body struct {
		Fragment string `doc:"URL fragment, with or without '#'" example:"#id=V1StGXR8_Z5jdHi6" json:"fragment"`
	}
}

// ResolveLinkResponse is the screen the fragment leads to.
type ResolveLinkResponse struct {
	Body router.View
}
