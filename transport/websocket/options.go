package websocket

import "time"

type Option func(*Server)

// WithAllowedOrigins - lets pages from these origins open the socket; "*" allows any.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.allowedOrigins = append(s.allowedOrigins, origins...)
	}
}

// WithCookieTTL - sets the session cookie lifetime; zero makes it a browser-session cookie.
func WithCookieTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.cookieTTL = ttl
	}
}
