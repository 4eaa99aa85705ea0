package scene

import (
	"testing"

	"github.com/lixenwraith/pharaoh-slot/constant"
)

func TestNewScene(t *testing.T) {
	s := New()
	if s.Day.Alpha != 1 || s.Night.Alpha != 0 {
		t.Errorf("layers day=%v night=%v, want 1/0", s.Day.Alpha, s.Night.Alpha)
	}
	if len(s.Mascots) != constant.MascotCount {
		t.Fatalf("mascots = %d", len(s.Mascots))
	}
	for i, m := range s.Mascots {
		if m.ID != i || m.Eligible() {
			t.Errorf("mascot %d: id=%d eligible=%v before entrance", i, m.ID, m.Eligible())
		}
	}
	if s.Layer(LayerNight) != &s.Night || s.Layer(LayerDay) != &s.Day {
		t.Error("Layer() returned the wrong layer")
	}
}

func TestBeams(t *testing.T) {
	s := New()
	a := s.Mascots[1]
	b1 := s.SpawnBeam(a)
	b2 := s.SpawnBeam(a)

	if b1.ID == b2.ID {
		t.Error("beam ids must be unique")
	}
	if b1.Actor != 1 || b1.Y2 != constant.ReelTop {
		t.Errorf("beam = %+v", b1)
	}

	if !s.DestroyBeam(b1) {
		t.Error("DestroyBeam(b1) = false")
	}
	if s.DestroyBeam(b1) {
		t.Error("second DestroyBeam(b1) = true")
	}
	if len(s.Beams) != 1 || s.Beams[0] != b2 {
		t.Errorf("beams = %v", s.Beams)
	}

	s.ClearBeams()
	if len(s.Beams) != 0 {
		t.Error("ClearBeams left beams behind")
	}
}
