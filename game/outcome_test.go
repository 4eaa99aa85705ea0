package game

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lixenwraith/pharaoh-slot/reel"
)

func sym(s reel.Symbol) reel.Outcome { return reel.SymbolOutcome(s) }

func fail(err error) reel.Outcome { return reel.ErrorOutcome(fmt.Errorf("reel: %w", err)) }

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []reel.Outcome
		want     Classification
	}{
		{"all ankh", []reel.Outcome{sym(reel.Ankh), sym(reel.Ankh), sym(reel.Ankh)}, Win},
		{"one differs", []reel.Outcome{sym(reel.Ankh), sym(reel.Horus), sym(reel.Ankh)}, Loss},
		{"all differ", []reel.Outcome{sym(reel.Ufo), sym(reel.Scarab), sym(reel.Pharaoh)}, Loss},
		{"error among symbols", []reel.Outcome{sym(reel.Ankh), fail(reel.ErrIncompleteStrip), sym(reel.Horus)}, FatalLoss},
		{"error among matching symbols", []reel.Outcome{sym(reel.Ankh), sym(reel.Ankh), fail(reel.ErrInvalidSymbol)}, FatalLoss},
		{"unset counts as failure", []reel.Outcome{sym(reel.Ankh), {}, sym(reel.Ankh)}, FatalLoss},
		{"single reel", []reel.Outcome{sym(reel.Horus)}, Win},
		{"empty", nil, Loss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.outcomes); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFailedReels(t *testing.T) {
	ids, errs := FailedReels([]reel.Outcome{sym(reel.Ankh), fail(reel.ErrIncompleteStrip), {}})
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("ids = %v, want [1 2]", ids)
	}
	if !errors.Is(errs[0], reel.ErrIncompleteStrip) || !errors.Is(errs[1], reel.ErrSettleTimeout) {
		t.Errorf("errs = %v", errs)
	}
}

func permutations(n int) [][]int {
	if n == 1 {
		return [][]int{{0}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			q := make([]int, 0, n)
			q = append(q, p[:i]...)
			q = append(q, n-1)
			q = append(q, p[i:]...)
			out = append(out, q)
		}
	}
	return out
}

func TestBarrierAnyOrder(t *testing.T) {
	sets := [][]reel.Outcome{
		{sym(reel.Ankh), sym(reel.Ankh), sym(reel.Ankh)},
		{sym(reel.Ankh), sym(reel.Horus), sym(reel.Ankh)},
		{sym(reel.Ankh), fail(reel.ErrIncompleteStrip), sym(reel.Horus)},
	}

	for _, outcomes := range sets {
		want := Classify(outcomes)
		for _, order := range permutations(len(outcomes)) {
			b := NewBarrier(len(outcomes))
			for k, id := range order {
				closed := b.Arrive(id, outcomes[id])
				last := k == len(order)-1
				if closed != last {
					t.Fatalf("order %v: arrival %d closed=%v", order, k, closed)
				}
				if b.Closed() != last {
					t.Fatalf("order %v: Closed()=%v after %d arrivals", order, b.Closed(), k+1)
				}
			}
			if got := Classify(b.Outcomes()); got != want {
				t.Errorf("order %v: classification %v, want %v", order, got, want)
			}
		}
	}
}

func TestBarrierIgnoresDuplicates(t *testing.T) {
	b := NewBarrier(3)
	b.Arrive(0, sym(reel.Ankh))
	if b.Arrive(0, sym(reel.Horus)) {
		t.Error("duplicate arrival closed the barrier")
	}
	if b.Arrive(5, sym(reel.Horus)) || b.Arrive(-1, sym(reel.Horus)) {
		t.Error("out of range arrival accepted")
	}
	if b.Count() != 1 {
		t.Errorf("Count() = %d, want 1", b.Count())
	}
	if b.Outcomes()[0].Symbol != reel.Ankh {
		t.Error("duplicate arrival overwrote the first outcome")
	}

	b.Arrive(1, sym(reel.Ankh))
	if !b.Arrive(2, sym(reel.Ankh)) {
		t.Fatal("last arrival did not close")
	}
	if b.Arrive(2, sym(reel.Ankh)) {
		t.Error("barrier closed twice")
	}
}
