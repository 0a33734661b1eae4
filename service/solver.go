// Package service re-architects the reference miner's process-wide
// globals (INPUT_QUEUE, OUTPUT_QUEUE, should_quit, PROPS[]) as an owned
// solver-service object, per SPEC_FULL.md's Design Notes rendition of
// §9's "Globals in the queue façade" note.
package service

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/qitmeer/cuckoosolver/cuckoo"
	"github.com/qitmeer/cuckoosolver/siphash"
)

// Logger mirrors cuckoo.Logger so this package need not import cuckoo's
// logging surface by name; any internal/log.Logger satisfies both.
type Logger = cuckoo.Logger

// Config configures a Solver. Zero-value Easiness defaults to the node
// count per partition (NNodes), the conventional M = N/2 choice of §1.
type Config struct {
	Params       cuckoo.Params
	Easiness     uint64
	Nthreads     int
	Ntrims       int
	MaxSols      int
	MaxQueueSize int
	Log          Logger
}

func (c Config) withDefaults() Config {
	if c.Easiness == 0 {
		c.Easiness = c.Params.NNodes()
	}
	if c.Ntrims == 0 {
		c.Ntrims = c.Params.DefaultNtrims()
	}
	if c.MaxSols == 0 {
		c.MaxSols = 1
	}
	if c.MaxQueueSize == 0 {
		c.MaxQueueSize = 64
	}
	if c.Nthreads == 0 {
		c.Nthreads = 1
	}
	return c
}

// Request is one queued solve request: a 32-byte header and an opaque
// 8-byte correlation tag echoed back with every result (§6). The first
// four bytes of the tag double as the little-endian key-derivation nonce;
// the whole 8 bytes are otherwise meaningless to the solver.
type Request struct {
	Header [32]byte
	Nonce  [8]byte
}

// Result is one completed solve outcome, tagged with the Request's
// opaque nonce so the host can correlate it. Err is non-nil only for a
// fatal outcome (never for Overloaded, which simply yields no Solutions).
type Result struct {
	Nonce     [8]byte
	Solutions [][]uint32
	Err       error
}

// Solver is the owned, lifecycle-managed queue façade of §6: IsQueueUnderLimit /
// PushInput / PopOutput / Start / Stop, backed by buffered Go channels (the
// idiomatic rendition of a bounded MPMC queue; no lock-free MPMC queue
// library appears anywhere in the retrieval pack, so this is the one
// ambient concern built on a language primitive — see DESIGN.md).
type Solver struct {
	cfg    Config
	input  chan Request
	output chan Result

	mu      sync.Mutex
	cancel  context.CancelFunc
	group   *errgroup.Group
	running bool
}

// New constructs a Solver. Queues are allocated here (matching the
// reference's new() creating queues ahead of start()), but the dispatch
// goroutine is not spawned until Start.
func New(cfg Config) *Solver {
	cfg = cfg.withDefaults()
	return &Solver{
		cfg:    cfg,
		input:  make(chan Request, cfg.MaxQueueSize),
		output: make(chan Result, cfg.MaxQueueSize),
	}
}

// IsQueueUnderLimit reports whether the solver is running (started and not
// since stopped) and its input queue has room. It is false before Start.
func (s *Solver) IsQueueUnderLimit() bool {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	return running && len(s.input) < cap(s.input)
}

// PushInput enqueues a solve request carrying the caller's own opaque
// nonce, which is echoed back as the wire-level key of its Result. The
// uuid correlation id used in logs is assigned later, by the dispatch
// loop. Non-blocking: returns false if the queue is full or the solver is
// not running.
func (s *Solver) PushInput(header [32]byte, nonce [8]byte) bool {
	if !s.IsQueueUnderLimit() {
		return false
	}
	select {
	case s.input <- Request{Header: header, Nonce: nonce}:
		return true
	default:
		return false
	}
}

// PopOutput is a non-blocking try-dequeue of one completed result.
func (s *Solver) PopOutput() (Result, bool) {
	select {
	case r := <-s.output:
		return r, true
	default:
		return Result{}, false
	}
}

// Start spawns the single dispatch goroutine that pulls from the input
// queue, drives cuckoo.Solve, and pushes each outcome to the output
// queue. The goroutine's lifecycle is an errgroup.Group joined on Stop.
func (s *Solver) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("solver already started")
	}
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	s.cancel = cancel
	s.group = g
	s.running = true
	g.Go(func() error {
		return s.dispatch(gctx)
	})
	return nil
}

// Stop signals the dispatch goroutine to exit and joins it.
func (s *Solver) Stop() error {
	s.mu.Lock()
	cancel := s.cancel
	g := s.group
	s.running = false
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	return g.Wait()
}

func (s *Solver) dispatch(ctx context.Context) error {
	logger := s.cfg.Log
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-s.input:
			id := uuid.New()
			nonce32 := binary.LittleEndian.Uint32(req.Nonce[:4])
			keys := siphash.DeriveKeys(req.Header[:], nonce32)
			if logger != nil {
				logger.Debug("dispatching solve", "request_id", id.String())
			}
			sols, err := cuckoo.Solve(keys, s.cfg.Params, s.cfg.Easiness, s.cfg.Nthreads, s.cfg.Ntrims, s.cfg.MaxSols, logger)
			result := Result{Nonce: req.Nonce}
			if err != nil {
				if cuckoo.IsOverloaded(err) {
					if logger != nil {
						logger.Warn("solve overloaded, no solutions for this request", "request_id", id.String())
					}
				} else {
					if logger != nil {
						logger.Error("solve failed", "request_id", id.String(), "error", err.Error())
					}
					result.Err = err
				}
			} else {
				result.Solutions = sols
			}
			select {
			case s.output <- result:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
