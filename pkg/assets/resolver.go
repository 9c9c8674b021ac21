// Package assets resolves stored asset references into absolute URLs suited
// to the calling client, and back into relative references at write time.
package assets

import (
	"net"
	"net/url"
	"strings"

	"github.com/oksasatya/portfolio-cms/internal/domain/entity"
)

const DefaultPrefix = "/uploads/"

// Resolver carries the deployment settings that influence URL resolution.
// They have no other meaning in the application.
type Resolver struct {
	PublicURL      string // explicit public base URL, wins over everything
	Production     bool
	FallbackDomain string // used in production when no usable host header exists
	Prefix         string // reserved upload path prefix, DefaultPrefix when empty
}

// Origin is what the resolver needs to know about the incoming request.
type Origin struct {
	Scheme         string
	Host           string
	ForwardedHost  string
	ForwardedProto string
}

func (r Resolver) prefix() string {
	if r.Prefix == "" {
		return DefaultPrefix
	}
	return r.Prefix
}

// BaseURL returns scheme://host without a trailing slash, or "" when nothing
// usable is known (development without a Host header).
//
// Priority: PublicURL, then in production the forwarded or request host when
// it is not a local address, then in development the request host, then the
// production fallback domain.
func (r Resolver) BaseURL(o Origin) string {
	if r.PublicURL != "" {
		return strings.TrimRight(r.PublicURL, "/")
	}
	if r.Production {
		host := firstValue(o.ForwardedHost)
		if host == "" {
			host = o.Host
		}
		if host != "" && !isLocalHost(hostOnly(host)) {
			scheme := firstValue(o.ForwardedProto)
			if scheme == "" {
				scheme = "https"
			}
			return scheme + "://" + hostOnly(host)
		}
		if r.FallbackDomain != "" {
			return "https://" + strings.TrimRight(r.FallbackDomain, "/")
		}
		return ""
	}

	host := o.Host
	if host == "" {
		host = firstValue(o.ForwardedHost)
	}
	if host == "" {
		return ""
	}
	scheme := firstValue(o.ForwardedProto)
	if scheme == "" {
		scheme = o.Scheme
	}
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + host
}

// Absolute turns a relative upload reference into an absolute URL. An
// absolute URL that points at the upload prefix on a local host has its host
// replaced, which makes the operation idempotent. Anything else is returned
// unchanged.
func (r Resolver) Absolute(ref entity.AssetRef, o Origin) entity.AssetRef {
	s := string(ref)
	if s == "" {
		return ref
	}
	base := r.BaseURL(o)
	if base == "" {
		return ref
	}
	if strings.HasPrefix(s, r.prefix()) {
		return entity.AssetRef(base + s)
	}
	u, ok := r.uploadURL(s)
	if !ok || !isLocalHost(u.Hostname()) {
		return ref
	}
	return entity.AssetRef(base + pathAndQuery(u))
}

// Relative strips scheme and host from upload URLs that belong to this site
// (a local host, the configured public URL, or the caller's own host), so
// stored documents never pin a deployment-specific host.
func (r Resolver) Relative(ref entity.AssetRef, o Origin) entity.AssetRef {
	s := strings.TrimSpace(string(ref))
	if s == "" || strings.HasPrefix(s, r.prefix()) {
		return entity.AssetRef(s)
	}
	u, ok := r.uploadURL(s)
	if !ok {
		return entity.AssetRef(s)
	}
	if isLocalHost(u.Hostname()) || r.ownsHost(u.Host, o) {
		return entity.AssetRef(pathAndQuery(u))
	}
	return entity.AssetRef(s)
}

// Normalize rewrites every asset reference owned by c in place.
func (r Resolver) Normalize(c entity.AssetCarrier, o Origin) {
	c.MapAssets(func(ref entity.AssetRef) entity.AssetRef { return r.Absolute(ref, o) })
}

// NormalizeAll returns a normalized copy of items; the input is not modified.
func NormalizeAll[T any, PT interface {
	*T
	entity.AssetCarrier
}](r Resolver, items []T, o Origin) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		r.Normalize(PT(&out[i]), o)
	}
	return out
}

func (r Resolver) uploadURL(s string) (*url.URL, bool) {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return nil, false
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return nil, false
	}
	if !strings.HasPrefix(u.Path, r.prefix()) {
		return nil, false
	}
	return u, true
}

func (r Resolver) ownsHost(host string, o Origin) bool {
	if r.PublicURL != "" {
		if pu, err := url.Parse(r.PublicURL); err == nil && strings.EqualFold(pu.Host, host) {
			return true
		}
	}
	for _, h := range []string{o.Host, firstValue(o.ForwardedHost)} {
		if h != "" && strings.EqualFold(hostOnly(h), hostOnly(host)) {
			return true
		}
	}
	return false
}

func pathAndQuery(u *url.URL) string {
	p := u.EscapedPath()
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p
}

// firstValue returns the left-most entry of a comma separated proxy header.
func firstValue(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}

func hostOnly(hostport string) string {
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		return h
	}
	return strings.Trim(hostport, "[]")
}

// isLocalHost reports hosts that are never valid public origins: localhost
// names and IP literals.
func isLocalHost(host string) bool {
	host = strings.ToLower(strings.Trim(host, "[]"))
	if host == "" || host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	return net.ParseIP(host) != nil
}
