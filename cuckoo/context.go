package cuckoo

import (
	"sync"
	"sync/atomic"

	"github.com/qitmeer/cuckoosolver/siphash"
)

// Logger is the ambient logging surface the trimming engine and cycle
// finder call through. It mirrors the teacher's key/value call-site idiom
// (Trace/Debug/Info/Warn/Error(msg, kv...)) without tying this package to
// any concrete logging library — internal/log's wrapper satisfies this
// interface structurally. A nil Logger is replaced by a no-op at
// construction, so tests need not supply one.
type Logger interface {
	Trace(msg string, kv ...interface{})
	Debug(msg string, kv ...interface{})
	Info(msg string, kv ...interface{})
	Warn(msg string, kv ...interface{})
	Error(msg string, kv ...interface{})
}

type noopLogger struct{}

func (noopLogger) Trace(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Context is the solver context of §2: keys, easiness, thread count, and
// trim-round count, plus the shared LiveSet/TwiceSet/CuckooMap/Barrier
// structures that all workers operate on through the solve.
type Context struct {
	Params   Params
	Keys     siphash.Keys
	Easiness uint64
	Nthreads int
	Ntrims   int
	MaxSols  int
	Log      Logger

	live  *LiveSet
	twice *TwiceSet
	cmap  *CuckooMap
	// direct backs ModeDirect: a dense N-entry array standing in for the
	// CuckooMap, with no LiveSet/TwiceSet trimming at all.
	direct []uint64

	barrier *Barrier

	mu        sync.Mutex
	solutions [][]uint32
	nsols     int64
	overload  int32
}

// NewContext builds a solver context ready for Solve. Allocation of
// LiveSet/TwiceSet/CuckooMap happens lazily inside Solve, matching the
// lifecycle of §3: "LiveSet + TwiceSet exist across all trim rounds...".
func NewContext(params Params, keys siphash.Keys, easiness uint64, nthreads, ntrims, maxsols int) *Context {
	return &Context{
		Params:   params,
		Keys:     keys,
		Easiness: easiness,
		Nthreads: nthreads,
		Ntrims:   ntrims,
		MaxSols:  maxsols,
		Log:      noopLogger{},
	}
}

func (ctx *Context) logger() Logger {
	if ctx.Log == nil {
		return noopLogger{}
	}
	return ctx.Log
}

// sipnode is the edge oracle of §4.A, specialized to this context's keys
// and node space.
func (ctx *Context) sipnode(nonce uint64, side uint64) uint64 {
	return siphash.Sipnode(ctx.Keys, nonce, side, ctx.Params.NNodes())
}

// claimSolutionSlot atomically reserves the next solution slot, returning
// false if MaxSols has already been reached (mirrors the reference's
// atomic fetch-and-add on nsols).
func (ctx *Context) claimSolutionSlot() bool {
	for {
		n := atomic.LoadInt64(&ctx.nsols)
		if int(n) >= ctx.MaxSols {
			return false
		}
		if atomic.CompareAndSwapInt64(&ctx.nsols, n, n+1) {
			return true
		}
	}
}

func (ctx *Context) appendSolution(sol []uint32) {
	ctx.mu.Lock()
	ctx.solutions = append(ctx.solutions, sol)
	ctx.mu.Unlock()
}

func (ctx *Context) setOverloaded() { atomic.StoreInt32(&ctx.overload, 1) }
func (ctx *Context) isOverloaded() bool { return atomic.LoadInt32(&ctx.overload) != 0 }

// isLive reports whether nonce is still a live candidate edge. ModeDirect
// never allocates a LiveSet (it skips trimming entirely), so every nonce
// in [0, Easiness) is considered live in that mode.
func (ctx *Context) isLive(nonce uint64) bool {
	if ctx.live == nil {
		return true
	}
	return ctx.live.Test(nonce)
}
