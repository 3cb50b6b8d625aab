package analysis

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/collide/internal/sim"
)

var (
	ErrTooShort      = errors.New("analysis: series too short")
	ErrUnknownColumn = errors.New("analysis: unknown column")
	ErrFlat          = errors.New("analysis: series has no oscillation")
)

// Columns lists the series names accepted by Column.
var Columns = []string{"kinetic", "px", "py", "collisions", "edge_hits", "bodies"}

// Column extracts one named per-frame series.
func Column(records []sim.FrameRecord, name string) ([]float64, error) {
	var get func(sim.FrameRecord) float64
	switch name {
	case "kinetic":
		get = func(r sim.FrameRecord) float64 { return r.Kinetic }
	case "px":
		get = func(r sim.FrameRecord) float64 { return r.Px }
	case "py":
		get = func(r sim.FrameRecord) float64 { return r.Py }
	case "collisions":
		get = func(r sim.FrameRecord) float64 { return float64(r.Collisions) }
	case "edge_hits":
		get = func(r sim.FrameRecord) float64 { return float64(r.EdgeHits) }
	case "bodies":
		get = func(r sim.FrameRecord) float64 { return float64(r.Bodies) }
	default:
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownColumn, name, Columns)
	}

	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = get(r)
	}
	return out, nil
}

// Spectrum returns the magnitude of the first half of the DFT of data with
// its mean removed. Bin k corresponds to frequency k/(len(data)*dt).
func Spectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantPeriod returns the period, in simulated time, of the strongest
// spectral bin of data sampled every dt.
func DominantPeriod(data []float64, dt float64) (float64, error) {
	if len(data) < 4 {
		return 0, ErrTooShort
	}
	ps := Spectrum(data)

	best, bestIdx := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, bestIdx = ps[k], k
		}
	}
	if bestIdx == 0 || best < 1e-9 {
		return 0, ErrFlat
	}
	return float64(len(data)) * dt / float64(bestIdx), nil
}
