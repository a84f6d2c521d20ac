package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

var ErrInvalidProxy = errors.New("invalid trusted proxy")

// ClientIPResolver finds the client address of a request. X-Forwarded-For
// and X-Real-IP are honoured only when the direct peer is a trusted proxy.
type ClientIPResolver struct {
	trusted []netip.Prefix
}

// NewClientIPResolver trusts the given proxies, each an address or a CIDR
// range. With none, forwarding headers are ignored.
func NewClientIPResolver(proxies ...string) (*ClientIPResolver, error) {
	r := &ClientIPResolver{}

	for _, raw := range proxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		prefix, err := parsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidProxy, raw, err)
		}

		r.trusted = append(r.trusted, prefix)
	}

	return r, nil
}

func parsePrefix(raw string) (netip.Prefix, error) {
	if strings.Contains(raw, "/") {
		prefix, err := netip.ParsePrefix(raw)

		return prefix.Masked(), err
	}

	addr, err := netip.ParseAddr(raw)
	if err != nil {
		return netip.Prefix{}, err
	}

	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// ClientIP returns the address rate limits and analytics attribute the
// request to.
func (r *ClientIPResolver) ClientIP(ctx huma.Context) string {
	peer := remoteIP(ctx.RemoteAddr())
	if !r.trusts(peer) {
		return peer
	}

	// The rightmost untrusted hop is the first one our proxies did not add.
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")

		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if i == 0 || !r.trusts(hop) {
				return hop
			}
		}
	}

	if xri := strings.TrimSpace(ctx.Header("X-Real-IP")); xri != "" {
		return xri
	}

	return peer
}

func (r *ClientIPResolver) trusts(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}

	addr = addr.Unmap()

	for _, prefix := range r.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}

	return false
}

func remoteIP(addr string) string {
	ip, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return ip
}

// clientKey identifies a client for rate limiting by IP and User-Agent.
func (r *ClientIPResolver) clientKey(ctx huma.Context) string {
	hash := sha256.Sum256([]byte(r.ClientIP(ctx) + "|" + ctx.Header("User-Agent")))

	return hex.EncodeToString(hash[:])
}
