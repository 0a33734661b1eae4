// Command cuckoosolver is a thin CLI wrapper around the solver core,
// grounded on the teacher's cmd/miner/common/config.go flag-grouping
// idiom and the reference cuckoo_miner.cpp's hardcoded header/nonce/trims
// scaffolding (SPEC_FULL.md notes the latter is scaffolding, not the true
// interface — the true interface is cuckoo.Solve).
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"runtime"

	flags "github.com/jessevdk/go-flags"

	"github.com/qitmeer/cuckoosolver/cuckoo"
	"github.com/qitmeer/cuckoosolver/internal/log"
	"github.com/qitmeer/cuckoosolver/siphash"
)

const exitOverloaded = 2

// options mirrors the teacher's OptionalConfig/NecessaryConfig grouping,
// scaled down to the handful of flags the solver core actually needs.
type options struct {
	Header   string `long:"header" description:"32-byte block header, hex-encoded" default:"A6C16443FC82250B49C7FAA3876E7AB89BA687918CB00C4C10D6625E3A2E7BCC"`
	Nonce    uint32 `long:"nonce" description:"key-derivation nonce" default:"0"`
	EdgeBits uint   `long:"edgebits" description:"log2 of nodes per partition" default:"11"`
	ProofSize int   `long:"proofsize" description:"required cycle length" default:"42"`
	Nthreads int    `long:"threads" description:"worker thread count" default:"0"`
	Ntrims   int    `long:"trims" description:"trim round count, 0 = use the recommended default" default:"0"`
	MaxSols  int    `long:"maxsols" description:"maximum solutions to report" default:"1"`
	Verbose  bool   `short:"v" long:"verbose" description:"enable debug logging"`
}

func main() {
	var opt options
	parser := flags.NewParser(&opt, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	header, err := hex.DecodeString(opt.Header)
	if err != nil || len(header) != 32 {
		fmt.Fprintln(os.Stderr, "header must be 32 bytes of hex")
		os.Exit(1)
	}

	var logger *log.Logger
	if opt.Verbose {
		logger, err = log.NewDevelopment()
	} else {
		logger, err = log.New()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	params := cuckoo.Params{EdgeBits: opt.EdgeBits, ProofSize: opt.ProofSize, PartBits: 0, Mode: cuckoo.ModeTrimmed}

	nthreads := opt.Nthreads
	if nthreads <= 0 {
		nthreads = runtime.NumCPU()
		if nthreads > 32 {
			nthreads = 32
		}
	}
	ntrims := opt.Ntrims
	if ntrims <= 0 {
		ntrims = params.DefaultNtrims()
	}

	keys := siphash.DeriveKeys(header, opt.Nonce)
	easiness := params.NNodes()

	sols, err := cuckoo.Solve(keys, params, easiness, nthreads, ntrims, opt.MaxSols, logger)
	if err != nil {
		if cuckoo.IsOverloaded(err) {
			logger.Warn("solve overloaded")
			os.Exit(exitOverloaded)
		}
		logger.Error("solve failed", "error", err.Error())
		os.Exit(1)
	}

	for _, sol := range sols {
		fmt.Println(sol)
	}
	if len(sols) == 0 {
		fmt.Println("no solution found")
	}
}
