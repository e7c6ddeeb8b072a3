package system

import (
	"testing"
	"time"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase         { return r.phase }
func (r recorder) Update(time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunnerPhaseOrder(t *testing.T) {
	var got []string
	r := NewRunner()
	r.Register(recorder{"cleanup", PhaseCleanup, &got})
	r.Register(recorder{"advance", PhaseUpdate, &got})
	r.Register(recorder{"record", PhaseInput, &got})
	r.Register(recorder{"advance2", PhaseUpdate, &got})
	r.Tick(time.Millisecond)

	want := []string{"record", "advance", "advance2", "cleanup"}
	if len(got) != len(want) {
		t.Fatalf("ran %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ran %v, want %v", got, want)
		}
	}

	got = got[:0]
	r.TickPhase(PhaseUpdate, time.Millisecond)
	if len(got) != 2 || got[0] != "advance" {
		t.Fatalf("TickPhase ran %v", got)
	}
	if r.Len() != 4 || r.Ticks() != 1 {
		t.Fatalf("len %d ticks %d", r.Len(), r.Ticks())
	}
}

func TestRunnerRejectsInvalidPhase(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("invalid phase registered")
		}
	}()
	var got []string
	NewRunner().Register(recorder{"bad", Phase(42), &got})
}
