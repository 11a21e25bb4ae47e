package shader

import "log/slog"

// DefaultInfoLogLimit bounds the compiler and linker logs kept per failure.
const DefaultInfoLogLimit = 1024

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithStrict makes Build stop after the compile step when either stage failed,
// instead of linking a program that cannot work.
func WithStrict(strict bool) Option {
	return func(m *Manager) { m.strict = strict }
}

// WithInfoLogLimit sets the maximum number of log bytes read per failure.
// Non-positive values keep the default.
func WithInfoLogLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.logLimit = n
		}
	}
}
