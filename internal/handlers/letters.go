package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/love-letter-go/internal/analytics"
	"github.com/serroba/love-letter-go/internal/composer"
	"github.com/serroba/love-letter-go/internal/letter"
	"github.com/serroba/love-letter-go/internal/linkcodec"
	"github.com/serroba/love-letter-go/internal/router"
	"go.uber.org/zap"
)

// Outcomes reported in LetterOpenedEvent.
const (
	OutcomeReveal  = "reveal"
	OutcomeCompose = "compose"
	OutcomeFailed  = "failed"
)

// LetterHandler serves composing, fetching and resolving letters.
type LetterHandler struct {
	composer   *composer.Composer
	finder     letter.Finder
	resolver   *router.Resolver
	publishers analytics.Publishers
	logger     *zap.Logger
}

func NewLetterHandler(
	c *composer.Composer,
	finder letter.Finder,
	publishers analytics.Publishers,
	logger *zap.Logger,
) *LetterHandler {
	return &LetterHandler{
		composer:   c,
		finder:     finder,
		resolver:   router.NewResolver(finder, logger),
		publishers: publishers,
		logger:     logger,
	}
}

func (h *LetterHandler) CreateLetter(ctx context.Context, req *CreateLetterRequest) (*CreateLetterResponse, error) {
	l := letter.Letter{
		Sender:    req.Body.Sender,
		Recipient: req.Body.Recipient,
		Message:   req.Body.Message,
	}

	link, err := h.composer.Compose(ctx, l, composer.Strategy(req.Body.Strategy))
	if err != nil {
		return nil, h.composeError(err)
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LetterCreatedEvent{
		ID:        string(link.ID),
		Strategy:  string(link.Strategy),
		CreatedAt: time.Now().UTC(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishers.LetterCreated(ctx, event); err != nil {
		h.logger.Error("failed to publish letter created event",
			zap.String("strategy", event.Strategy),
			zap.Error(err),
		)
	}

	resp := &CreateLetterResponse{}
	resp.Headers.Location = link.URL
	resp.Body.Strategy = string(link.Strategy)
	resp.Body.ID = string(link.ID)
	resp.Body.Fragment = link.Fragment
	resp.Body.URL = link.URL
	resp.Body.ShareTitle = link.ShareTitle
	resp.Body.ShareText = link.ShareText

	return resp, nil
}

func (h *LetterHandler) composeError(err error) error {
	switch {
	case errors.Is(err, letter.ErrInvalidLetter):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, composer.ErrUnknownStrategy):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, letter.ErrTransport):
		h.logger.Warn("letter store unavailable", zap.Error(err))

		return huma.Error503ServiceUnavailable(composer.AdvisoryComposeFailed)
	default:
		h.logger.Error("failed to compose letter", zap.Error(err))

		return huma.Error500InternalServerError(composer.AdvisoryComposeFailed)
	}
}

func (h *LetterHandler) GetLetter(ctx context.Context, req *GetLetterRequest) (*GetLetterResponse, error) {
	stored, err := h.finder.GetByID(ctx, letter.ID(req.ID))

	h.publishOpened(ctx, &analytics.LetterOpenedEvent{
		ID:      req.ID,
		Kind:    linkcodec.KindStored.String(),
		Outcome: outcomeOf(err),
	})

	if err != nil {
		if errors.Is(err, letter.ErrNotFound) {
			return nil, huma.Error404NotFound(router.AdvisoryLinkInvalid)
		}

		h.logger.Warn("failed to fetch letter", zap.String("id", req.ID), zap.Error(err))

		return nil, huma.Error503ServiceUnavailable(router.AdvisoryLinkInvalid)
	}

	resp := &GetLetterResponse{}
	resp.Body.ID = string(stored.ID)
	resp.Body.Sender = stored.Letter.Sender
	resp.Body.Recipient = stored.Letter.Recipient
	resp.Body.Message = stored.Letter.Message
	resp.Body.CreatedAt = stored.CreatedAt

	return resp, nil
}

func (h *LetterHandler) ResolveLink(ctx context.Context, req *ResolveLinkRequest) (*ResolveLinkResponse, error) {
	frag := linkcodec.ParseFragment(req.Body.Fragment)
	view := h.resolver.Resolve(ctx, req.Body.Fragment)

	if frag.Kind != linkcodec.KindEmpty {
		h.publishOpened(ctx, &analytics.LetterOpenedEvent{
			ID:      string(frag.ID),
			Kind:    frag.Kind.String(),
			Outcome: outcomeOfView(view),
		})
	}

	return &ResolveLinkResponse{Body: view}, nil
}

func (h *LetterHandler) publishOpened(ctx context.Context, event *analytics.LetterOpenedEvent) {
	meta := RequestMetaFromContext(ctx)
	event.OpenedAt = time.Now().UTC()
	event.ClientIP = meta.ClientIP
	event.UserAgent = meta.UserAgent
	event.Referrer = meta.Referrer

	if err := h.publishers.LetterOpened(ctx, event); err != nil {
		h.logger.Error("failed to publish letter opened event",
			zap.String("kind", event.Kind),
			zap.Error(err),
		)
	}
}

func outcomeOf(err error) string {
	if err != nil {
		return OutcomeFailed
	}

	return OutcomeReveal
}

func outcomeOfView(view router.View) string {
	switch {
	case view.Mode == router.ModeReveal:
		return OutcomeReveal
	case view.Advisory != "":
		return OutcomeFailed
	default:
		return OutcomeCompose
	}
}
