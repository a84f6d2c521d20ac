package linkcodec

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/serroba/love-letter-go/internal/letter"
)

// StoredPrefix marks a fragment that references a store-backed letter.
const StoredPrefix = "id="

// ErrInvalidBaseURL is returned by ShareURL when the base is not absolute.
var ErrInvalidBaseURL = errors.New("base url must be absolute")

// Kind classifies a URL fragment.
type Kind int

const (
	// KindEmpty is an absent or empty fragment.
	KindEmpty Kind = iota
	// KindToken is a self-contained letter token.
	KindToken
	// KindStored references a letter kept in a store.
	KindStored
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindToken:
		return "token"
	case KindStored:
		return "stored"
	default:
		return "unknown"
	}
}

// Fragment is a parsed URL fragment.
type Fragment struct {
	Kind  Kind
	Token string
	ID    letter.ID
}

// ParseFragment classifies a raw fragment, with or without its leading '#'.
// A malformed "id=" fragment is treated as a token, which then fails to decode.
func ParseFragment(raw string) Fragment {
	body := strings.TrimPrefix(raw, "#")
	if body == "" {
		return Fragment{Kind: KindEmpty}
	}

	if rest, ok := strings.CutPrefix(body, StoredPrefix); ok {
		id, err := url.PathUnescape(rest)
		if err == nil && id != "" {
			return Fragment{Kind: KindStored, ID: letter.ID(id)}
		}
	}

	return Fragment{Kind: KindToken, Token: body}
}

// TokenFragment returns the fragment for a self-contained token.
func TokenFragment(token string) string {
	return token
}

// StoredFragment returns the fragment for a store-backed letter.
func StoredFragment(id letter.ID) string {
	return StoredPrefix + url.PathEscape(string(id))
}

// ShareURL appends fragment to baseURL, replacing any fragment baseURL had.
func ShareURL(baseURL, fragment string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	u.Fragment = ""
	u.RawFragment = ""

	return u.String() + "#" + fragment, nil
}
