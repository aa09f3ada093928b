package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/encodeous/dvsim/perf"
	"github.com/encodeous/dvsim/state"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Outcome int

const (
	// Converged means a full round produced no change anywhere
	Converged Outcome = iota
	// Exhausted means the iteration cap was reached while tables were still changing
	Exhausted
)

func (o Outcome) String() string {
	switch o {
	case Converged:
		return "CONVERGED"
	case Exhausted:
		return "EXHAUSTED"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

type Result struct {
	RunId   uuid.UUID
	Outcome Outcome
	// Rounds is the round the run stopped at
	Rounds int
	Tables []state.NodeTable
}

// Observer watches a run. It must not modify the topology.
type Observer interface {
	Start(t *Topology)
	RoundComplete(round int, changed bool, t *Topology)
	Finish(res *Result)
}

// Driver runs the synchronous distance-vector protocol over a topology.
// Every round is a broadcast phase followed by a drain phase, and no drain
// starts before every broadcast of the same round has been delivered.
type Driver struct {
	Topology      *Topology
	MaxIterations int
	Concurrent    bool
	Observer      Observer
	Log           *slog.Logger
}

func NewDriver(t *Topology, cfg state.RunCfg, obs Observer, log *slog.Logger) *Driver {
	state.ExpandRunConfig(&cfg)
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Driver{
		Topology:      t,
		MaxIterations: cfg.MaxIterations,
		Concurrent:    cfg.Concurrent,
		Observer:      obs,
		Log:           log,
	}
}

func (d *Driver) Run(ctx context.Context) (*Result, error) {
	maxIt := d.MaxIterations
	if maxIt <= 0 {
		maxIt = state.DefaultMaxIterations
	}
	res := &Result{RunId: uuid.New()}
	log := d.Log.With("run", res.RunId.String())
	log.Info("starting simulation", "routers", len(d.Topology.Routers()), "max_iterations", maxIt, "concurrent", d.Concurrent)

	if d.Observer != nil {
		d.Observer.Start(d.Topology)
	}

	for round := 1; ; round++ {
		start := time.Now()
		changed, err := d.Step(ctx)
		if err != nil {
			return nil, fmt.Errorf("simulation aborted in round %d: %w", round, err)
		}
		perf.RoundLatency.Add(float64(time.Since(start).Microseconds()))
		perf.RoundsRun.Add(1)
		log.Debug("round complete", "round", round, "changed", changed, "elapsed", time.Since(start))

		if d.Observer != nil {
			d.Observer.RoundComplete(round, changed, d.Topology)
		}

		res.Rounds = round
		if !changed {
			res.Outcome = Converged
			break
		}
		if round >= maxIt {
			res.Outcome = Exhausted
			break
		}
	}

	res.Tables = d.Topology.Tables()
	if res.Outcome == Converged {
		log.Info("convergence reached", "rounds", res.Rounds)
	} else {
		log.Warn("iteration cap reached without convergence", "rounds", res.Rounds)
	}
	if d.Observer != nil {
		d.Observer.Finish(res)
	}
	return res, nil
}

// Step runs a single round and reports whether any table changed.
// A round is never interrupted once started, ctx is only checked before it begins.
func (d *Driver) Step(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if d.Concurrent {
		return d.stepConcurrent()
	}
	return d.stepSequential()
}

func (d *Driver) broadcast(r *RouterNode) {
	adv := r.Advertise()
	for _, neigh := range r.Neighbours {
		d.Topology.Router(neigh.Id).ReceiveAdvertisement(adv)
	}
	perf.AdvertisementsSent.Add(float64(len(r.Neighbours)))
}

func (d *Driver) stepSequential() (bool, error) {
	routers := d.Topology.Routers()
	// every snapshot is taken before any router applies updates
	for _, r := range routers {
		d.broadcast(r)
	}
	changed := false
	for _, r := range routers {
		updated, err := r.DrainAndApply()
		if err != nil {
			return false, err
		}
		changed = changed || updated
	}
	return changed, nil
}

func (d *Driver) stepConcurrent() (bool, error) {
	routers := d.Topology.Routers()

	var bg errgroup.Group
	for _, r := range routers {
		bg.Go(func() error {
			d.broadcast(r)
			return nil
		})
	}
	// barrier: all broadcasts delivered
	if err := bg.Wait(); err != nil {
		return false, err
	}

	results := make([]bool, len(routers))
	var dg errgroup.Group
	for i, r := range routers {
		dg.Go(func() error {
			updated, err := r.DrainAndApply()
			results[i] = updated
			return err
		})
	}
	// barrier: all drains finished, the next broadcast may start
	if err := dg.Wait(); err != nil {
		return false, err
	}

	changed := false
	for _, updated := range results {
		changed = changed || updated
	}
	return changed, nil
}
