package convert

import "log/slog"

type Option func(*state)

type state struct {
	skipUnsupported bool
	log             *slog.Logger
}

// SkipUnsupported makes ToSpec drop wire nodes of unknown kinds instead of
// failing. Each dropped node is reported on log at warning level; a nil log
// uses slog.Default().
func SkipUnsupported(log *slog.Logger) Option {
	return func(st *state) {
		st.skipUnsupported = true
		st.log = log
	}
}

func newState(opts []Option) *state {
	st := &state{}
	for _, opt := range opts {
		opt(st)
	}
	if st.log == nil {
		st.log = slog.Default()
	}
	return st
}
