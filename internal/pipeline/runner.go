package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/pable/csround/internal/logging"
	"github.com/pable/csround/internal/metrics"
	"github.com/pable/csround/internal/model"
	"github.com/pable/csround/internal/scan"
	"github.com/pable/csround/internal/warmup"
)

// Loader turns one replay file into tables.
type Loader func(demo scan.Demo) (*model.Replay, error)

// Result summarises one pass over the replay set.
type Result struct {
	DemosFound  int
	DemosFailed int
	KnifeRounds int
	Skipped     map[string]int // by pipeline name
}

// Runner feeds replays through pipelines one at a time.
type Runner struct {
	Load    Loader
	Log     *zap.SugaredLogger
	Metrics *metrics.Metrics
}

// Run loads each demo in order, removes its knife round and hands it to every
// pipeline. A replay that fails to load is logged and left out; a pipeline
// that cannot use a replay skips it without affecting the others. Run stops
// between replays when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, demos []scan.Demo, pipes []Pipeline) (Result, error) {
	log := r.Log
	if log == nil {
		log = logging.Nop()
	}
	res := Result{DemosFound: len(demos), Skipped: make(map[string]int)}

	for _, d := range demos {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		name := filepath.Base(d.Path)
		log.Infow("Parsing", "demo", name, "event", d.Event)

		start := time.Now()
		rep, err := r.Load(d)
		if err != nil {
			log.Warnw("failed on demo", "demo", name, "error", err)
			res.DemosFailed++
			r.Metrics.ReplayFailed()
			continue
		}
		r.Metrics.ReplayParsed(time.Since(start))

		rep, removed := warmup.FilterKnifeRound(rep)
		if removed {
			res.KnifeRounds++
			r.Metrics.KnifeRoundRemoved()
			log.Infow("Removing knife round", "demo", name)
		}

		for _, p := range pipes {
			if err := p.Process(rep); err != nil {
				res.Skipped[p.Name()]++
				r.Metrics.PipelineSkipped(p.Name())
				if errors.Is(err, model.ErrMissingData) {
					log.Warnw("skipping demo", "demo", name, "pipeline", p.Name(), "reason", err)
				} else {
					log.Errorw("pipeline failed", "demo", name, "pipeline", p.Name(), "error", err)
				}
				continue
			}
			r.Metrics.KillsProcessed(p.Name(), len(rep.Kills))
		}
	}
	return res, nil
}
