// Package linkcodec turns letters into URL-fragment tokens and back.
//
// A token is the Base64 URL-alphabet encoding, without padding, of the UTF-8
// JSON object {"sender":...,"recipient":...,"message":...}. Tokens produced by
// earlier browser builds of the app decode unchanged.
package linkcodec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/serroba/love-letter-go/internal/letter"
)

// ErrDecode is wrapped by every error returned from Decode.
var ErrDecode = errors.New("invalid letter token")

var (
	urlSafeAlphabet  = strings.NewReplacer("+", "-", "/", "_")
	standardAlphabet = strings.NewReplacer("-", "+", "_", "/")
)

// wireLetter mirrors letter.Letter with pointer fields so that absent and
// null keys can be told apart from empty strings.
type wireLetter struct {
	Sender    *string `json:"sender"`
	Recipient *string `json:"recipient"`
	Message   *string `json:"message"`
}

// Encode serializes a letter into a URL-safe token. It never fails.
func Encode(l letter.Letter) string {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	// A struct of strings always encodes.
	_ = enc.Encode(l)

	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	encoded := base64.StdEncoding.EncodeToString(data)

	return strings.TrimRight(urlSafeAlphabet.Replace(encoded), "=")
}

// Decode parses a token produced by Encode. It returns either a complete
// letter or an error wrapping ErrDecode, never a partially filled letter.
func Decode(token string) (letter.Letter, error) {
	b64 := standardAlphabet.Replace(token)

	if b64 == "" {
		return letter.Letter{}, fmt.Errorf("%w: empty token", ErrDecode)
	}

	switch len(b64) % 4 {
	case 1:
		return letter.Letter{}, fmt.Errorf("%w: truncated token of length %d", ErrDecode, len(b64))
	case 2:
		b64 += "=="
	case 3:
		b64 += "="
	}

	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return letter.Letter{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if !utf8.Valid(raw) {
		return letter.Letter{}, fmt.Errorf("%w: payload is not valid UTF-8", ErrDecode)
	}

	var w wireLetter
	if err := json.Unmarshal(raw, &w); err != nil {
		return letter.Letter{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if w.Sender == nil || w.Recipient == nil || w.Message == nil {
		return letter.Letter{}, fmt.Errorf("%w: missing sender, recipient or message", ErrDecode)
	}

	return letter.Letter{
		Sender:    *w.Sender,
		Recipient: *w.Recipient,
		Message:   *w.Message,
	}, nil
}
