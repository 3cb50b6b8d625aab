package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/collide/internal/sim"
)

func TestDominantPeriod_Sine(t *testing.T) {
	const dt = 0.1
	data := make([]float64, 256)
	for i := range data {
		// period of 3.2 time units = 32 samples = bin 8
		data[i] = 5 + math.Sin(2*math.Pi*float64(i)*dt/3.2)
	}

	period, err := DominantPeriod(data, dt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(period-3.2) > 1e-9 {
		t.Errorf("expected period 3.2, got %v", period)
	}
}

func TestDominantPeriod_Errors(t *testing.T) {
	if _, err := DominantPeriod([]float64{1, 2}, 0.1); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	if _, err := DominantPeriod([]float64{4, 4, 4, 4, 4, 4, 4, 4}, 0.1); !errors.Is(err, ErrFlat) {
		t.Errorf("expected ErrFlat, got %v", err)
	}
}

func TestSpectrum_RemovesMean(t *testing.T) {
	ps := Spectrum([]float64{10, 10, 10, 10})
	for i, v := range ps {
		if v > 1e-12 {
			t.Errorf("bin %d: expected 0, got %v", i, v)
		}
	}
}

func TestColumn(t *testing.T) {
	records := []sim.FrameRecord{
		{Kinetic: 1, Py: -2, Collisions: 3},
		{Kinetic: 4, Py: 5, Collisions: 0},
	}

	ys, err := Column(records, "py")
	if err != nil {
		t.Fatal(err)
	}
	if ys[0] != -2 || ys[1] != 5 {
		t.Errorf("unexpected py column %v", ys)
	}

	cs, _ := Column(records, "collisions")
	if cs[0] != 3 {
		t.Errorf("unexpected collisions column %v", cs)
	}

	if _, err := Column(records, "spin"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestPhasePortraitToASCII(t *testing.T) {
	p := NewPhasePortrait("kinetic", []float64{0, 1, 2, 3}, "py", []float64{-1, 0, 1})
	if len(p.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(p.Points))
	}

	out := PhasePortraitToASCII(p, 20, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected 10 rows plus caption, got %d", len(lines))
	}
	if strings.Count(out, "•") != 3 {
		t.Errorf("expected 3 plotted points in\n%s", out)
	}
	if !strings.HasPrefix(lines[10], "py vs kinetic") {
		t.Errorf("unexpected caption %q", lines[10])
	}

	if PhasePortraitToASCII(nil, 10, 10) != "" {
		t.Error("nil portrait should render empty")
	}
}
