package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/qitmeer/cuckoosolver/cuckoo"
)

func TestSolverLifecycle(t *testing.T) {
	cfg := Config{
		Params:       cuckoo.Params{EdgeBits: 10, ProofSize: 6, PartBits: 0, Mode: cuckoo.ModeTrimmed},
		Nthreads:     1,
		MaxSols:      4,
		MaxQueueSize: 4,
	}
	s := New(cfg)

	require.True(t, s.IsQueueUnderLimit() == false, "queue should report not-under-limit before Start")
	require.NoError(t, s.Start())
	defer s.Stop()

	require.True(t, s.IsQueueUnderLimit())

	var header [32]byte
	var nonce [8]byte
	require.True(t, s.PushInput(header, nonce))

	deadline := time.After(5 * time.Second)
	for {
		if r, ok := s.PopOutput(); ok {
			require.Equal(t, nonce, r.Nonce)
			return
		}
		select {
		case <-deadline:
			t.Fatal("timed out waiting for a result")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestPropertiesJSON(t *testing.T) {
	cfg := Config{
		Params:   cuckoo.Params{EdgeBits: 11, ProofSize: 42},
		Nthreads: 4,
		Ntrims:   20,
		MaxSols:  2,
	}
	b, err := PropertiesJSON(cfg)
	require.NoError(t, err)
	require.Contains(t, string(b), "edgebits")
}
