package router

import (
	"context"
	"sync"

	"github.com/serroba/love-letter-go/internal/linkcodec"
	"go.uber.org/zap"
)

// Router owns the current View and moves it on each navigation.
//
// Store-backed letters are fetched in the background. A fetch result is
// applied only if no navigation happened since it started, so a slow
// response never overwrites a newer page.
type Router struct {
	resolver *Resolver
	logger   *zap.Logger

	mu        sync.Mutex
	view      View
	seq       uint64
	version   uint64
	listeners []func(View)

	// notifyMu serializes listener calls across goroutines.
	notifyMu sync.Mutex
}

// New creates a Router in the compose state.
func New(resolver *Resolver, logger *zap.Logger) *Router {
	return &Router{
		resolver: resolver,
		logger:   logger,
		view:     ComposeView(),
	}
}

// OnChange registers fn to be called after state changes.
// Calls are serialized and may come from a background goroutine. A change
// superseded before it reaches fn is skipped, so the last view fn sees is
// always the current one. fn must not call Navigate.
func (r *Router) OnChange(fn func(View)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners = append(r.listeners, fn)
}

// View returns the current state.
func (r *Router) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.view
}

// Navigate moves the router to the fragment raw. The returned channel is
// closed once the navigation has settled or has been superseded.
func (r *Router) Navigate(ctx context.Context, raw string) <-chan struct{} {
	done := make(chan struct{})
	frag := linkcodec.ParseFragment(raw)

	r.mu.Lock()
	r.seq++
	seq := r.seq

	if frag.Kind != linkcodec.KindStored {
		r.apply(r.resolver.decode(frag))
		close(done)

		return done
	}

	r.apply(loadingView(frag.ID))

	go func() {
		defer close(done)

		view := r.resolver.fetch(ctx, frag.ID)

		r.mu.Lock()
		if r.seq != seq {
			r.mu.Unlock()
			r.logger.Debug("dropping stale letter response", zap.String("id", string(frag.ID)))

			return
		}

		r.apply(view)
	}()

	return done
}

// apply sets the view and notifies listeners. It must be called with r.mu
// held and releases it.
func (r *Router) apply(view View) {
	r.view = view
	r.version++
	version := r.version
	listeners := r.listeners
	r.mu.Unlock()

	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()

	for _, fn := range listeners {
		if !r.current(version) {
			return
		}

		fn(view)
	}
}

func (r *Router) current(version uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.version == version
}
