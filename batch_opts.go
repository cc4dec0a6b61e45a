package lzindex

import "log/slog"

// BuildOption configures BuildAll.
type BuildOption func(*buildOptions)

type buildOptions struct {
	jobs   int
	force  bool
	logger *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (o *buildOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}

// BuildWithJobs sets how many files may be indexed concurrently. Values
// below 1 fall back to a single job. Defaults to 1.
func BuildWithJobs(n int) BuildOption {
	return func(o *buildOptions) {
		if n < 1 {
			n = 1
		}
		o.jobs = n
	}
}

// BuildWithForce reindexes files even when an index already exists.
func BuildWithForce() BuildOption {
	return func(o *buildOptions) {
		o.force = true
	}
}

// BuildWithLogger sets the logger used to report per-file progress.
func BuildWithLogger(l *slog.Logger) BuildOption {
	return func(o *buildOptions) {
		o.logger = l
	}
}
