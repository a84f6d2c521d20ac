// Package client talks to a running letter service over its HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/serroba/love-letter-go/internal/composer"
	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/router"
)

const defaultTimeout = 10 * time.Second

// ErrInvalidServerURL is returned by New when the server URL is not absolute.
var ErrInvalidServerURL = errors.New("server url must be absolute")

// Client calls the letter service. It implements letter.Finder, so a Router
// can fetch store-backed letters through it.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// New creates a client for the service at serverURL. A nil httpClient uses a
// client with a 10s timeout.
func New(serverURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidServerURL, serverURL)
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{baseURL: u, http: httpClient}, nil
}

type letterFields struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

type composeRequest struct {
	letterFields

	Strategy string `json:"strategy,omitempty"`
}

type composeResponse struct {
	Strategy   string `json:"strategy"`
	ID         string `json:"id"`
	Fragment   string `json:"fragment"`
	URL        string `json:"url"`
	ShareTitle string `json:"shareTitle"`
	ShareText  string `json:"shareText"`
}

type letterResponse struct {
	letterFields

	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
	}

	return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
}

// Compose asks the service to build a share link.
func (c *Client) Compose(ctx context.Context, l letter.Letter, strategy composer.Strategy) (*composer.Link, error) {
	body := composeRequest{
		letterFields: letterFields{Sender: l.Sender, Recipient: l.Recipient, Message: l.Message},
		Strategy:     string(strategy),
	}

	var out composeResponse

	if err := c.do(ctx, http.MethodPost, "/letters", body, &out); err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return nil, err
		}

		switch apiErr.Status {
		case http.StatusUnprocessableEntity:
			return nil, fmt.Errorf("%w: %w", letter.ErrInvalidLetter, apiErr)
		case http.StatusBadRequest:
			return nil, fmt.Errorf("%w: %w", composer.ErrUnknownStrategy, apiErr)
		default:
			return nil, fmt.Errorf("%w: %w", letter.ErrTransport, apiErr)
		}
	}

	return &composer.Link{
		Strategy:   composer.Strategy(out.Strategy),
		Token:      tokenOf(out),
		ID:         letter.ID(out.ID),
		Fragment:   out.Fragment,
		URL:        out.URL,
		ShareTitle: out.ShareTitle,
		ShareText:  out.ShareText,
	}, nil
}

func tokenOf(out composeResponse) string {
	if composer.Strategy(out.Strategy) == composer.StrategyToken {
		return out.Fragment
	}

	return ""
}

// GetByID fetches a stored letter.
func (c *Client) GetByID(ctx context.Context, id letter.ID) (*letter.StoredLetter, error) {
	var out letterResponse

	if err := c.do(ctx, http.MethodGet, "/letters/"+url.PathEscape(string(id)), nil, &out); err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return nil, err
		}

		if apiErr.Status == http.StatusNotFound {
			return nil, letter.ErrNotFound
		}

		return nil, fmt.Errorf("%w: %w", letter.ErrTransport, apiErr)
	}

	l := letter.Letter{Sender: out.Sender, Recipient: out.Recipient, Message: out.Message}

	// An incomplete record counts as no letter at all.
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", letter.ErrNotFound, err)
	}

	return &letter.StoredLetter{
		ID:        letter.ID(out.ID),
		Letter:    l,
		CreatedAt: out.CreatedAt,
	}, nil
}

// Resolve asks the service which screen a fragment opens on.
func (c *Client) Resolve(ctx context.Context, fragment string) (router.View, error) {
	var view router.View

	if err := c.do(ctx, http.MethodPost, "/links/resolve", map[string]string{"fragment": fragment}, &view); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return router.View{}, fmt.Errorf("%w: %w", letter.ErrTransport, apiErr)
		}

		return router.View{}, err
	}

	return view, nil
}

// do sends a JSON request and decodes a successful body into out. A non-2xx
// answer is returned as *APIError; network and decode failures wrap
// letter.ErrTransport.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", letter.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		apiErr.Status = resp.StatusCode

		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", letter.ErrTransport, err)
	}

	return nil
}

var _ letter.Finder = (*Client)(nil)
