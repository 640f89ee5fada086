// Package logging provides structured logging for the Paycon client.
//
// It wraps log/slog with the client's default attributes (service name,
// version) and config-driven level and format selection. Domain packages do
// not depend on this package directly; they accept a small Logger interface
// that *logging.Logger satisfies, with a no-op fallback.
package logging
