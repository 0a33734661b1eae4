package cuckoo

import mapset "github.com/deckarep/golang-set"

// cuckooEdge is a (U,V) node-index pair in the cycle finder's disjoint
// U/V index space (see §3: U nodes stored as u+1, V nodes as
// 1+NNodes+v). Used as the element type of the cycle edge-set in 4.F.a,
// playing the role of the reference's std::set<edge>.
type cuckooEdge struct {
	u, v uint64
}

// find runs the cycle finder of §4.F over every live nonce in this
// worker's stride, extracting and recording any PROOFSIZE-length cycle it
// discovers. Returns a *SolveError for PathOverflow, IllegalCycle, or
// InvariantViolation (CuckooMap probe drift, or a cycle edge set left
// unreconciled by extraction); all are fatal to the solve per §7.
func (ctx *Context) find(thread int) error {
	nnodes := ctx.Params.NNodes()
	proofSize := ctx.Params.ProofSize

	var walkErr error
	walkStride(thread, ctx.Nthreads, ctx.Easiness, func(nonce uint64) {
		if walkErr != nil || !ctx.isLive(nonce) {
			return
		}

		u0 := 1 + ctx.sipnode(nonce, sideU)
		v0 := 1 + nnodes + ctx.sipnode(nonce, sideV)

		u := ctx.get(u0)
		v := ctx.get(v0)
		if u == v0 || v == u0 {
			return // duplicate edge, §8 invariant 6
		}

		us, nu, err := ctx.walkPath(u0, u)
		if err != nil {
			walkErr = err
			return
		}
		vs, nv, err := ctx.walkPath(v0, v)
		if err != nil {
			walkErr = err
			return
		}

		if us[nu] == vs[nv] {
			// Paths share a root: subtract their common length from both
			// (preserving the nu-nv offset) and walk up toward the root
			// in lockstep until the fork is found (§4.F.5).
			min := nu
			if nv < min {
				min = nv
			}
			nu -= min
			nv -= min
			for us[nu] != vs[nv] {
				nu++
				nv++
			}
			length := nu + nv + 1
			if length == proofSize && ctx.claimSolutionSlot() {
				sol, err := ctx.extractSolution(u0, v0, us[:nu+1], vs[:nv+1])
				if err != nil {
					walkErr = err
					return
				}
				ctx.appendSolution(sol)
			}
			return
		}

		// Attach the shorter path to the longer by reversing pointers.
		if nu < nv {
			for i := nu; i > 0 && err == nil; i-- {
				err = ctx.set(us[i], us[i-1])
			}
			if err == nil {
				err = ctx.set(u0, v0)
			}
		} else {
			for i := nv; i > 0 && err == nil; i-- {
				err = ctx.set(vs[i], vs[i-1])
			}
			if err == nil {
				err = ctx.set(v0, u0)
			}
		}
		if err != nil {
			walkErr = err
		}
	})
	return walkErr
}

// get/set dispatch to either the sparse CuckooMap (ModeTrimmed) or the
// dense direct array (ModeDirect), so the cycle finder is agnostic to the
// underlying representation.
func (ctx *Context) get(u uint64) uint64 {
	if ctx.Params.Mode == ModeDirect {
		return ctx.direct[u]
	}
	return ctx.cmap.Get(u)
}

func (ctx *Context) set(u, v uint64) error {
	if ctx.Params.Mode == ModeDirect {
		ctx.direct[u] = v
		return nil
	}
	return ctx.cmap.Set(u, v)
}

// walkPath follows map pointers from `start` (whose first hop is already
// known as `first`), capped at MaxPathLen. On overrun it distinguishes a
// pre-existing illegal cycle (the repeated node is found within the walked
// path) from a fatal path overflow, per §4.F step 3.
func (ctx *Context) walkPath(start, first uint64) ([]uint64, int, error) {
	path := make([]uint64, MaxPathLen)
	path[0] = start
	n := 0
	u := first
	for u != 0 {
		n++
		if n >= MaxPathLen {
			for i := 0; i < n; i++ {
				if path[i] == u {
					return nil, 0, newSolveError(IllegalCycle, "pre-existing cycle encountered during path walk")
				}
			}
			return nil, 0, newSolveError(PathOverflow, "path walk exceeded MaxPathLen")
		}
		path[n] = u
		u = ctx.get(u)
	}
	return path, n, nil
}

// extractSolution builds the cycle's edge set (4.F.a) and scans all live
// nonces in ascending order to recover the PROOFSIZE nonces that compose
// it, mirroring the reference's std::set<edge> reconciliation.
func (ctx *Context) extractSolution(u0, v0 uint64, us, vs []uint64) ([]uint32, error) {
	cycle := mapset.NewSet()
	cycle.Add(cuckooEdge{u0, v0})

	nu := len(us) - 1
	for i := nu - 1; i >= 0; i-- {
		cycle.Add(cuckooEdge{us[(i+1) &^ 1], us[i|1]})
	}
	nv := len(vs) - 1
	for i := nv - 1; i >= 0; i-- {
		cycle.Add(cuckooEdge{vs[i|1], vs[(i+1) &^ 1]})
	}

	nnodes := ctx.Params.NNodes()
	sol := make([]uint32, 0, ctx.Params.ProofSize)
	for nonce := uint64(0); nonce < ctx.Easiness && cycle.Cardinality() > 0; nonce++ {
		if !ctx.isLive(nonce) {
			continue
		}
		e := cuckooEdge{1 + ctx.sipnode(nonce, sideU), 1 + nnodes + ctx.sipnode(nonce, sideV)}
		if cycle.Contains(e) {
			sol = append(sol, uint32(nonce))
			cycle.Remove(e)
		}
	}
	if cycle.Cardinality() != 0 {
		return nil, newSolveError(InvariantViolation, "cycle edge set not fully reconciled during solution extraction")
	}
	return sol, nil
}
