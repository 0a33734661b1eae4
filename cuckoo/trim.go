package cuckoo

// walkStride calls fn for every nonce assigned to worker `thread` out of
// `nthreads`, striding in blocks of 32 as §4.D specifies: nonce in
// [t*32 + k*nthreads*32, ...) for k = 0, 1, 2, ...
func walkStride(thread, nthreads int, easiness uint64, fn func(nonce uint64)) {
	blockStride := uint64(nthreads) * 32
	for base := uint64(thread) * 32; base < easiness; base += blockStride {
		end := base + 32
		if end > easiness {
			end = easiness
		}
		for nonce := base; nonce < end; nonce++ {
			fn(nonce)
		}
	}
}

// side identifies U (0) or V (1) endpoints, matching sipnode's `side`.
const (
	sideU = uint64(0)
	sideV = uint64(1)
)

// trimSide runs one directional trim pass (§4.D steps 1-3) over every
// partition for the given side. Worker 0 performs the TwiceSet reset
// between barriers; all workers perform the mark and sweep passes over
// their own disjoint stride.
func (ctx *Context) trimSide(thread int, side uint64) {
	parts := ctx.Params.Parts()
	partMask := ctx.Params.PartMask()
	partBits := ctx.Params.PartBits

	for p := uint64(0); p < parts; p++ {
		if thread == 0 {
			ctx.twice.Reset()
		}
		ctx.barrier.Wait()

		walkStride(thread, ctx.Nthreads, ctx.Easiness, func(nonce uint64) {
			if !ctx.live.Test(nonce) {
				return
			}
			endpoint := ctx.sipnode(nonce, side)
			if endpoint&partMask == p {
				ctx.twice.Set(endpoint >> partBits)
			}
		})
		ctx.barrier.Wait()

		walkStride(thread, ctx.Nthreads, ctx.Easiness, func(nonce uint64) {
			if !ctx.live.Test(nonce) {
				return
			}
			endpoint := ctx.sipnode(nonce, side)
			if endpoint&partMask == p && !ctx.twice.Test(endpoint>>partBits) {
				ctx.live.Reset(nonce, thread)
			}
		})
		ctx.barrier.Wait()
	}
}

// runTrimRounds performs ctx.Ntrims full rounds (U then V, all partitions
// each) of the trimming engine (§4.D). Called by every worker; barriers
// keep them in lockstep.
func (ctx *Context) runTrimRounds(thread int) {
	for round := 0; round < ctx.Ntrims; round++ {
		if thread == 0 {
			ctx.logger().Debug("trim round starting", "round", round, "live", ctx.live.Count())
		}
		ctx.trimSide(thread, sideU)
		ctx.trimSide(thread, sideV)
	}
}
