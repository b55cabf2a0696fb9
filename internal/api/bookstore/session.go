package bookstore

import (
	"context"
	"net/http"
)

type cookiesKey struct{}

// WithCookies attaches the browser's cookies to ctx. Every request issued
// with that context carries them, so the backend sees the user's session.
func WithCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	if len(cookies) == 0 {
		return ctx
	}
	return context.WithValue(ctx, cookiesKey{}, cookies)
}

// CookiesFromContext returns the cookies stored by WithCookies
func CookiesFromContext(ctx context.Context) []*http.Cookie {
	cookies, _ := ctx.Value(cookiesKey{}).([]*http.Cookie)
	return cookies
}
