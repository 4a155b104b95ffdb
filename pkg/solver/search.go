package solver

import (
	"time"

	"github.com/sa-ameen/mcboms-optimization/pkg/catalog"
)

// searchResult carries one search's terminal state back to Solve.
type searchResult struct {
	best      float64
	bestSel   []int // chosen alt ID per group, in group order
	hasBest   bool
	nodes     int64
	cancelled bool
	// abandoned is the maximum relaxation bound among nodes whose
	// expansion was cut off by a limit; every unexplored region of the
	// tree lies under one of them, so max(best, abandoned) bounds the
	// true optimum.
	abandoned float64
}

// searcher is the transient per-solve state of one depth-first
// branch-and-bound pass. It is rebuilt for every Solve call; nothing
// survives across invocations.
type searcher struct {
	groups      []group
	budget      float64
	constraints []Constraint

	deadline    time.Time
	hasDeadline bool
	nodeLimit   int64

	// shared is non-nil only for parallel workers: a cross-worker
	// incumbent value and node counter. Workers prune against it only
	// when strictly beaten, so equal-value ties still resolve by branch
	// order at merge time.
	shared *sharedState

	cur []int
	res searchResult
}

func (e *Engine) newSearcher(groups []group) *searcher {
	s := &searcher{
		groups:      groups,
		budget:      e.cfg.Budget,
		constraints: e.constraints,
		nodeLimit:   e.cfg.NodeLimit,
		cur:         make([]int, len(groups)),
	}
	if e.cfg.TimeLimit > 0 {
		s.deadline = time.Now().Add(e.cfg.TimeLimit)
		s.hasDeadline = true
	}
	return s
}

func (e *Engine) solveSerial() searchResult {
	s := e.newSearcher(e.groups)
	s.seedBaseline()
	s.dfs(0, s.budget, 0)
	return s.res
}

// seedBaseline installs the all-do-nothing incumbent. It is always
// budget-feasible; only an extra constraint can reject it.
func (s *searcher) seedBaseline() {
	sel := make([]int, len(s.groups))
	if s.admits(sel) {
		s.res.best = 0
		s.res.bestSel = sel
		s.res.hasBest = true
	}
}

func (s *searcher) dfs(idx int, remaining, running float64) {
	s.res.nodes++
	if s.limitHit() {
		s.res.cancelled = true
		s.noteAbandoned(running + s.suffixBound(idx, remaining))
		return
	}

	if idx == len(s.groups) {
		s.offer(running)
		return
	}

	bound := running + s.suffixBound(idx, remaining)
	if s.pruned(bound) {
		return
	}

	for _, it := range s.groups[idx].items {
		if it.cost > remaining {
			continue
		}
		s.cur[idx] = it.altID
		if !s.canExtend(idx) {
			continue
		}
		s.dfs(idx+1, remaining-it.cost, running+it.value)
		if s.res.cancelled {
			s.noteAbandoned(bound)
			return
		}
		// Re-check after possible incumbent improvements below us.
		if s.pruned(bound) {
			return
		}
	}
}

// pruned reports whether a node with the given bound cannot beat the
// incumbent: the local one on ties (earlier branch wins), a cross-worker
// one only when strictly worse.
func (s *searcher) pruned(bound float64) bool {
	if s.res.hasBest && bound <= s.res.best {
		return true
	}
	if s.shared != nil && bound < s.shared.bestValue() {
		return true
	}
	return false
}

// offer proposes a complete assignment; the incumbent is replaced only
// when strictly better, so ties keep the earlier-ordered branch.
func (s *searcher) offer(running float64) {
	if s.res.hasBest && running <= s.res.best {
		return
	}
	if !s.admits(s.cur) {
		return
	}
	s.res.best = running
	s.res.bestSel = append([]int(nil), s.cur...)
	s.res.hasBest = true
	if s.shared != nil {
		s.shared.improve(running)
	}
}

// suffixBound is the fractional-relaxation upper bound on the undecided
// groups: each contributes the best objective value among its
// alternatives that individually fit the remaining budget, raised to a
// fractional share of its best cost-efficiency alternative when its
// top-value alternative does not fit. Summing per-group maxima over a
// shared budget never understates the true optimum of the suffix.
func (s *searcher) suffixBound(idx int, remaining float64) float64 {
	bound := 0.0
	for i := idx; i < len(s.groups); i++ {
		g := &s.groups[i]
		contribution := g.bestFit(remaining)
		if len(g.items) > 0 && g.items[0].cost > remaining && g.bestEff > 0 {
			if frac := g.bestEff * remaining; frac > contribution {
				contribution = frac
			}
		}
		bound += contribution
	}
	return bound
}

func (s *searcher) limitHit() bool {
	if s.shared != nil {
		n := s.shared.nodes.Add(1)
		if s.shared.stop.Load() {
			return true
		}
		if s.nodeLimit > 0 && n > s.nodeLimit {
			s.shared.stop.Store(true)
			return true
		}
	} else if s.nodeLimit > 0 && s.res.nodes > s.nodeLimit {
		return true
	}
	if s.hasDeadline && s.res.nodes%64 == 0 && time.Now().After(s.deadline) {
		if s.shared != nil {
			s.shared.stop.Store(true)
		}
		return true
	}
	return false
}

func (s *searcher) noteAbandoned(bound float64) {
	if bound > s.res.abandoned {
		s.res.abandoned = bound
	}
}

// admits checks every extra constraint against a complete assignment.
func (s *searcher) admits(altIDs []int) bool {
	if len(s.constraints) == 0 {
		return true
	}
	sel := s.selection(altIDs, len(altIDs))
	for _, c := range s.constraints {
		if !c.Admits(sel) {
			return false
		}
	}
	return true
}

// canExtend asks prune-capable constraints whether the decided prefix
// (groups 0..idx) can still be completed feasibly.
func (s *searcher) canExtend(idx int) bool {
	if len(s.constraints) == 0 {
		return true
	}
	var prefix catalog.Selection
	remaining := len(s.groups) - idx - 1
	for _, c := range s.constraints {
		p, ok := c.(Pruner)
		if !ok {
			continue
		}
		if prefix == nil {
			prefix = s.selection(s.cur, idx+1)
		}
		if !p.CanExtend(prefix, remaining) {
			return false
		}
	}
	return true
}

func (s *searcher) selection(altIDs []int, n int) catalog.Selection {
	sel := make(catalog.Selection, n)
	for i := 0; i < n; i++ {
		sel[s.groups[i].siteID] = altIDs[i]
	}
	return sel
}
