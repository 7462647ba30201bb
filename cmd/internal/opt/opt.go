package opt

import (
	"flag"
	"strconv"

	"github.com/gridgame/tictactoe/config"
)

// Minimax holds search flags shared by the commands that run the AI.
// Zero values leave the configured setting alone.
type Minimax struct {
	Debug   int
	Threads int
	NoPrune bool
	// Weighted is nil unless -weighted was given.
	Weighted *bool
}

func (o *Minimax) AddFlags(flags *flag.FlagSet) {
	flags.IntVar(&o.Debug, "debug", 0, "debug level")
	flags.IntVar(&o.Threads, "search-threads", 0, "search root moves on this many goroutines")
	flags.BoolVar(&o.NoPrune, "noprune", false, "disable alpha-beta pruning")
	flags.BoolFunc("weighted", "prefer faster wins and slower losses (default from config)", func(s string) error {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		o.Weighted = &v
		return nil
	})
}

func (o *Minimax) Apply(cfg *config.Config) {
	if o.Debug != 0 {
		cfg.AI.Debug = o.Debug
	}
	if o.Threads != 0 {
		cfg.AI.Threads = o.Threads
	}
	cfg.AI.NoPrune = cfg.AI.NoPrune || o.NoPrune
	if o.Weighted != nil {
		cfg.AI.NoDepthWeighting = !*o.Weighted
	}
}
