package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lixenwraith/pharaoh-slot/event"
)

func TestCollectorCountsEvents(t *testing.T) {
	c := NewCollector()
	q := event.NewEventQueue()
	r := event.NewRouter(q)
	r.Register(c)

	q.Emit(event.EventSessionStarted, &event.SessionPayload{Attempts: 3})
	q.Emit(event.EventSpinStarted, &event.SessionPayload{Attempts: 3, Spins: 1})
	q.Emit(event.EventReelSettled, &event.ReelSettledPayload{Reel: 0, Symbol: "ankh"})
	q.Emit(event.EventReelSettled, &event.ReelSettledPayload{Reel: 1, Err: errors.New("incomplete strip")})
	q.Emit(event.EventOutcomeClassified, &event.OutcomePayload{Classification: "fatal", Attempts: 0, CycleDuration: 3400 * time.Millisecond})
	q.Emit(event.EventGameOver, &event.SessionPayload{Elapsed: 5 * time.Second})
	r.DispatchAll()

	if got := testutil.ToFloat64(c.Sessions); got != 1 {
		t.Errorf("sessions = %v", got)
	}
	if got := testutil.ToFloat64(c.Spins); got != 1 {
		t.Errorf("spins = %v", got)
	}
	if got := testutil.ToFloat64(c.ReelErrors); got != 1 {
		t.Errorf("reel errors = %v", got)
	}
	if got := testutil.ToFloat64(c.Outcomes.WithLabelValues("fatal")); got != 1 {
		t.Errorf("fatal outcomes = %v", got)
	}
	if got := testutil.ToFloat64(c.Attempts); got != 0 {
		t.Errorf("attempts gauge = %v", got)
	}
	if got := testutil.ToFloat64(c.GamesOver); got != 1 {
		t.Errorf("game over = %v", got)
	}
	if n := testutil.CollectAndCount(c.CycleTime); n != 1 {
		t.Errorf("cycle histogram series = %d", n)
	}
}

func TestCollectorHandler(t *testing.T) {
	c := NewCollector()
	c.Spins.Add(4)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if !strings.Contains(string(body), "pharaoh_slot_spins_total 4") {
		t.Errorf("metrics output missing spins counter:\n%s", body)
	}
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector()
	b := NewCollector()
	a.Spins.Inc()
	if testutil.ToFloat64(b.Spins) != 0 {
		t.Error("collectors share state")
	}
}
