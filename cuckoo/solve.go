package cuckoo

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/qitmeer/cuckoosolver/siphash"
)

// Solve is the §6 solver entry point: given keys, easiness, thread count,
// trim-round count, and a solution cap, it runs the trimming engine and
// cycle finder to completion and returns every PROOFSIZE-cycle found, or
// an Overloaded/fatal *SolveError.
//
// The worker pool (§4.G) is an errgroup.Group: every worker is joined
// before Solve returns, and the first non-nil error any worker produces
// is what Solve returns. The group's context is not handed to the
// workers, so an error in one worker does not interrupt the others; each
// runs to the end of its own phase work before the join completes.
func Solve(keys siphash.Keys, params Params, easiness uint64, nthreads, ntrims, maxsols int, log Logger) ([][]uint32, error) {
	ctx := NewContext(params, keys, easiness, nthreads, ntrims, maxsols)
	if log != nil {
		ctx.Log = log
	}
	return ctx.Solve()
}

// Solve runs the context's configured solve to completion.
func (ctx *Context) Solve() ([][]uint32, error) {
	ctx.barrier = NewBarrier(ctx.Nthreads)

	switch ctx.Params.Mode {
	case ModeDirect:
		ctx.direct = make([]uint64, ctx.Params.N()+1)
	default:
		ctx.live = NewLiveSet(ctx.Easiness, ctx.Nthreads)
		ctx.twice = NewTwiceSet(ctx.Params.NNodes() / ctx.Params.Parts())
	}

	g, _ := errgroup.WithContext(context.Background())
	for t := 0; t < ctx.Nthreads; t++ {
		thread := t
		g.Go(func() error {
			return ctx.worker(thread)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ctx.solutions, nil
}

// worker runs one thread's full lifecycle: trim rounds (ModeTrimmed only),
// the overload check, CuckooMap/direct-array handoff, then cycle finding.
// Every worker executes every phase in lockstep via the shared barrier;
// only thread 0 performs the allocator/reset actions that precede each
// barrier, per §4.G.
func (ctx *Context) worker(thread int) error {
	if ctx.Params.Mode == ModeTrimmed {
		ctx.runTrimRounds(thread)
		ctx.barrier.Wait()

		if thread == 0 {
			alive := ctx.live.Count()
			load := 100 * alive / ctx.Params.CuckooSize()
			if load >= 90 {
				ctx.logger().Warn("solve overloaded", "load_pct", load, "alive", alive)
				ctx.setOverloaded()
			} else {
				ctx.cmap = NewCuckooMap(ctx.Params)
				ctx.logger().Info("trimming complete", "alive", alive, "load_pct", load)
			}
		}
		ctx.barrier.Wait()

		if ctx.isOverloaded() {
			return newSolveError(Overloaded, "post-trim live-edge count too large for cuckoo hash")
		}
	} else if thread == 0 {
		ctx.logger().Info("direct mode: skipping trim, live-edge set is all nonces")
	}

	if err := ctx.find(thread); err != nil {
		var se *SolveError
		if errors.As(err, &se) {
			ctx.logger().Error("cycle finder aborted", "kind", se.Kind.String())
		}
		return err
	}
	return nil
}
