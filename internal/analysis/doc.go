// Package analysis inspects recorded arena runs.
//
//   - [Spectrum]: power spectrum of a per-frame series
//   - [DominantPeriod]: strongest non-constant period in a series
//   - [Column]: extracts a named series from frame records
//   - [PhasePortraitToASCII]: terminal scatter of one series against another
//
// # Periodicity
//
// A lone pair bouncing between two walls makes total momentum flip at a
// fixed rate; the dominant period of the "py" column recovers it:
//
//	period, err := analysis.DominantPeriod(analysis.Column(frames, "py"), dt)
package analysis
