package middleware

import (
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/love-letter-go/internal/ratelimit"
	"go.uber.org/zap"
)

// RateLimit returns a Huma middleware enforcing limiter per client.
//
// Operations can tune their limits through ratelimit.MetadataKey metadata:
// disable limiting, pin a scope, or declare their own limits.
func RateLimit(
	api huma.API,
	limiter *ratelimit.Limiter,
	ips *ClientIPResolver,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		op := ctx.Operation()
		req := ratelimit.Request{
			ClientKey: ips.clientKey(ctx),
			Method:    ctx.Method(),
			Endpoint:  ratelimit.EndpointConfigFor(op),
		}

		if op != nil {
			req.Route = op.Path
		}

		exceeded, err := limiter.Check(ctx.Context(), req)
		if err != nil {
			logger.Error("rate limit check failed", zap.String("path", req.Route), zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if exceeded != nil {
			logger.Warn("rate limit exceeded",
				zap.String("path", req.Route),
				zap.String("method", req.Method),
				zap.String("scope", string(exceeded.Scope)),
				zap.Int64("count", exceeded.Count),
				zap.Int64("max", exceeded.Config.Max),
				zap.Duration("window", exceeded.Config.Window),
				zap.String("client_ip", ips.ClientIP(ctx)),
			)

			ctx.SetHeader("Retry-After", strconv.Itoa(int(exceeded.Config.Window.Seconds())))
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, exceeded.Error())

			return
		}

		next(ctx)
	}
}
