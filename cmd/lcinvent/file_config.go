package main

import (
	"github.com/BurntSushi/toml"

	"github.com/lcinvent/lcinvent/compress"
)

// fileConfig mirrors the Config table's keys for optional --config loading.
// Flags passed on the command line are layered on top and win on conflict.
type fileConfig struct {
	MaxArity             int  `toml:"max_arity"`
	Threads              int  `toml:"threads"`
	InvCandidates        int  `toml:"inv_candidates"`
	FIFOWorklist         bool `toml:"fifo_worklist"`
	AscendingWorklist    bool `toml:"ascending_worklist"`
	LossyCandidates      bool `toml:"lossy_candidates"`
	NoCache              bool `toml:"no_cache"`
	NoOptFreeVars        bool `toml:"no_opt_free_vars"`
	NoOptSingleUse       bool `toml:"no_opt_single_use"`
	NoOptUpperBound      bool `toml:"no_opt_upper_bound"`
	NoOptForceMultiuse   bool `toml:"no_opt_force_multiuse"`
	NoOptUselessAbstract bool `toml:"no_opt_useless_abstract"`
	NoStats              bool `toml:"no_stats"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	_, err := toml.DecodeFile(path, &fc)
	return fc, err
}

// options turns a decoded file config into compress.Option values; zero
// values are skipped so flag defaults from cobra can still take effect
// where the file is silent on a key.
func (fc fileConfig) options() []compress.Option {
	var opts []compress.Option
	if fc.MaxArity > 0 {
		opts = append(opts, compress.WithMaxArity(fc.MaxArity))
	}
	if fc.Threads > 0 {
		opts = append(opts, compress.WithThreads(fc.Threads))
	}
	if fc.InvCandidates > 0 {
		opts = append(opts, compress.WithInvCandidates(fc.InvCandidates))
	}
	if fc.FIFOWorklist {
		opts = append(opts, compress.WithFIFOWorklist(true))
	}
	if fc.AscendingWorklist {
		opts = append(opts, compress.WithAscendingWorklist(true))
	}
	if fc.LossyCandidates {
		opts = append(opts, compress.WithLossyCandidates(true))
	}
	if fc.NoCache {
		opts = append(opts, compress.WithNoCache(true))
	}
	if fc.NoOptFreeVars {
		opts = append(opts, compress.WithNoOptFreeVars(true))
	}
	if fc.NoOptSingleUse {
		opts = append(opts, compress.WithNoOptSingleUse(true))
	}
	if fc.NoOptUpperBound {
		opts = append(opts, compress.WithNoOptUpperBound(true))
	}
	if fc.NoOptForceMultiuse {
		opts = append(opts, compress.WithNoOptForceMultiuse(true))
	}
	if fc.NoOptUselessAbstract {
		opts = append(opts, compress.WithNoOptUselessAbstract(true))
	}
	if fc.NoStats {
		opts = append(opts, compress.WithNoStats(true))
	}
	return opts
}
