package solver

import (
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// sharedState is the only mutable resource shared between parallel
// workers: the best known objective value (updated by strictly-better
// compare-and-swap, so concurrent updates never lose a better incumbent)
// and the combined node counter driving limits. A worker reading a
// slightly stale value merely prunes less aggressively; it never prunes
// a branch that could still win.
type sharedState struct {
	bits  atomic.Uint64 // math.Float64bits of the best objective
	nodes atomic.Int64
	stop  atomic.Bool
}

func newSharedState(seed float64) *sharedState {
	sh := &sharedState{}
	sh.bits.Store(math.Float64bits(seed))
	return sh
}

func (sh *sharedState) bestValue() float64 {
	return math.Float64frombits(sh.bits.Load())
}

// improve installs v as the shared best if strictly better.
func (sh *sharedState) improve(v float64) {
	for {
		old := sh.bits.Load()
		if v <= math.Float64frombits(old) {
			return
		}
		if sh.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return
		}
	}
}

// solveParallel distributes the first group's branches across workers.
// Each worker explores its subtree to completion or cancellation with
// worker-local incumbent state; the parent merges the locals in branch
// order, keeping strictly better results, so ties resolve exactly as in
// the serial search.
func (e *Engine) solveParallel() searchResult {
	// The merge base is the all-do-nothing baseline, when admitted.
	base := e.newSearcher(e.groups)
	base.seedBaseline()
	merged := base.res

	seed := math.Inf(-1)
	if merged.hasBest {
		seed = merged.best
	}
	shared := newSharedState(seed)

	first := e.groups[0]
	results := make([]searchResult, len(first.items))

	var grp errgroup.Group
	grp.SetLimit(e.cfg.Workers)
	for b, it := range first.items {
		if it.cost > e.cfg.Budget {
			continue
		}
		grp.Go(func() error {
			w := e.newSearcher(e.groups)
			w.shared = shared
			w.deadline = base.deadline
			w.hasDeadline = base.hasDeadline
			w.cur[0] = it.altID
			if !w.canExtend(0) {
				return nil
			}
			w.dfs(1, e.cfg.Budget-it.cost, it.value)
			results[b] = w.res
			return nil
		})
	}
	_ = grp.Wait() // workers never error

	for _, res := range results {
		if res.hasBest && (!merged.hasBest || res.best > merged.best) {
			merged.best = res.best
			merged.bestSel = res.bestSel
			merged.hasBest = true
		}
		merged.cancelled = merged.cancelled || res.cancelled
		if res.abandoned > merged.abandoned {
			merged.abandoned = res.abandoned
		}
	}
	merged.nodes = shared.nodes.Load()
	return merged
}
