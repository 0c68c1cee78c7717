// File: config.go
// Role: functional-options configuration for the driver loop, mirroring the
// teacher's builder.BuilderOption/newBuilderConfig shape: a private default
// struct, a public Option type, and one constructor applying options in
// order.
package compress

import "go.uber.org/zap"

// Option customizes a Config before a Compress call.
type Option func(*Config)

// Config collects every tunable named in the corpus-compression entry
// point's Config table. Fields map 1:1 onto the table's keys; the
// no_cache / fifo_worklist / ascending_worklist fields and every no_opt_*
// field except NoOptUselessAbstract are threaded straight through to
// search.Options and shift.Shifter. NoOptUselessAbstract and
// LossyCandidates are applied by the driver itself when it picks the winner
// and builds the candidate report.
type Config struct {
	MaxArity             int
	Threads              int
	InvCandidates        int
	FIFOWorklist         bool
	AscendingWorklist    bool
	LossyCandidates      bool
	NoCache              bool
	NoOptFreeVars        bool
	NoOptSingleUse       bool
	NoOptUpperBound      bool
	NoOptForceMultiuse   bool
	NoOptUselessAbstract bool
	NoStats              bool
	Logger               *zap.SugaredLogger
}

func defaultConfig() Config {
	return Config{
		MaxArity:      2,
		Threads:       1,
		InvCandidates: 1,
	}
}

// NewConfig builds a Config from defaults plus opts, applied in order.
func NewConfig(opts ...Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxArity caps invention arity (default 2).
func WithMaxArity(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxArity = n
		}
	}
}

// WithThreads sets search worker-pool parallelism (default 1).
func WithThreads(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Threads = n
		}
	}
}

// WithInvCandidates sets how many top candidates per iteration to report in
// StepResult.Candidates (default 1, i.e. only the winner).
func WithInvCandidates(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.InvCandidates = n
		}
	}
}

// WithFIFOWorklist selects FIFO worklist pop order; default LIFO.
func WithFIFOWorklist(v bool) Option { return func(c *Config) { c.FIFOWorklist = v } }

// WithAscendingWorklist sorts newly produced worklist items ascending by
// upper bound before they are pushed back.
func WithAscendingWorklist(v bool) Option { return func(c *Config) { c.AscendingWorklist = v } }

// WithLossyCandidates allows StepResult.Candidates to include degenerate
// (bare-IVar, identity-equivalent) runner-up candidates instead of silently
// dropping them from the report. The accepted winner is always checked for
// degeneracy regardless of this flag; only the reported runner-up list is
// affected.
func WithLossyCandidates(v bool) Option { return func(c *Config) { c.LossyCandidates = v } }

// WithNoCache disables shift memoization.
func WithNoCache(v bool) Option { return func(c *Config) { c.NoCache = v } }

// WithNoOptFreeVars disables escape-pruning.
func WithNoOptFreeVars(v bool) Option { return func(c *Config) { c.NoOptFreeVars = v } }

// WithNoOptSingleUse keeps singleton groups instead of discarding them.
func WithNoOptSingleUse(v bool) Option { return func(c *Config) { c.NoOptSingleUse = v } }

// WithNoOptUpperBound disables upper-bound pruning.
func WithNoOptUpperBound(v bool) Option { return func(c *Config) { c.NoOptUpperBound = v } }

// WithNoOptForceMultiuse disables the multi-use extension path.
func WithNoOptForceMultiuse(v bool) Option { return func(c *Config) { c.NoOptForceMultiuse = v } }

// WithNoOptUselessAbstract keeps degenerate (identity-equivalent)
// inventions.
func WithNoOptUselessAbstract(v bool) Option {
	return func(c *Config) { c.NoOptUselessAbstract = v }
}

// WithNoStats suppresses Stats population on every StepResult.
func WithNoStats(v bool) Option { return func(c *Config) { c.NoStats = v } }

// WithLogger injects a structured logger for driver progress; defaults to a
// no-op logger (see internal/logging.NoOp) when left unset.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}
