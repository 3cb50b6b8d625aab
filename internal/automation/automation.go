package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/collide/internal/arena"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/sim"
	"github.com/san-kum/collide/internal/storage"
)

var (
	ErrEmptyBatch   = errors.New("automation: batch has no runs")
	ErrUnknownParam = errors.New("automation: unknown sweep parameter")
	ErrSweepSteps   = errors.New("automation: sweep needs at least two steps")
)

// Batch is a scripted list of headless runs read from YAML.
type Batch struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Runs        []BatchRun `yaml:"runs"`
}

// BatchRun is one entry of a batch. Keys missing from the file keep the
// config defaults.
type BatchRun struct {
	Name          string `yaml:"name"`
	config.Config `yaml:",inline"`
}

// UnmarshalYAML decodes a run on top of config.DefaultConfig, so only the
// keys present in the file replace defaults.
func (r *BatchRun) UnmarshalYAML(node *yaml.Node) error {
	type plain BatchRun
	p := plain{Config: *config.DefaultConfig()}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = BatchRun(p)
	return nil
}

// Outcome pairs a finished run with its stored id, if it was saved.
type Outcome struct {
	Name   string
	RunID  string
	Result *sim.Result
}

func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	if len(batch.Runs) == 0 {
		return nil, ErrEmptyBatch
	}
	for i := range batch.Runs {
		r := &batch.Runs[i]
		if r.Name == "" {
			r.Name = fmt.Sprintf("%s-%d", r.Preset, i+1)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("run %d (%s): %w", i+1, r.Name, err)
		}
	}
	return &batch, nil
}

// RunBatch executes every run in order. A nil store skips saving. Progress
// lines go to out when it is non-nil.
func RunBatch(ctx context.Context, batch *Batch, st *storage.Store, out io.Writer) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(batch.Runs))

	for i := range batch.Runs {
		run := &batch.Runs[i]
		progress(out, "run %d/%d: %s (%s, %d frames)\n", i+1, len(batch.Runs), run.Name, run.Preset, run.Frames)

		w, acfg, err := run.Build(run.Seed)
		if err != nil {
			return outcomes, fmt.Errorf("run %d: %w", i+1, err)
		}
		result, err := simulate(ctx, w, acfg, run.Frames)
		if err != nil {
			return outcomes, fmt.Errorf("run %d: %w", i+1, err)
		}

		o := Outcome{Name: run.Name, Result: result}
		if st != nil {
			o.RunID, err = st.Save(storage.NewMetadata(run.Preset, run.Seed, result.StepsTaken, acfg), result)
			if err != nil {
				return outcomes, fmt.Errorf("run %d save: %w", i+1, err)
			}
		}
		outcomes = append(outcomes, o)
	}

	return outcomes, nil
}

// ParameterSweep runs one preset across evenly spaced values of a single
// arena parameter.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min, Max float64
	NumSteps int
}

// SweepResult holds the standard metrics for one parameter value.
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	StepsTaken int
}

// SweepParams lists the parameters a sweep can vary.
var SweepParams = []string{"dt", "g", "max_speed", "theta", "width", "height"}

func setParam(c *config.Config, name string, v float64) error {
	switch name {
	case "dt":
		c.Dt = v
	case "g":
		c.G = v
	case "max_speed":
		c.MaxSpeed = v
	case "theta":
		c.Theta = v
	case "width":
		c.Width = v
	case "height":
		c.Height = v
	default:
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return nil
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, out io.Writer) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, ErrSweepSteps
	}
	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep

		cfg := *sweep.Base
		if err := setParam(&cfg, sweep.Param, paramVal); err != nil {
			return nil, err
		}
		w, acfg, err := cfg.Build(cfg.Seed)
		if err != nil {
			return results, fmt.Errorf("%s=%v: %w", sweep.Param, paramVal, err)
		}
		result, err := simulate(ctx, w, acfg, cfg.Frames)
		if err != nil {
			return results, fmt.Errorf("%s=%v: %w", sweep.Param, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Metrics:    result.Metrics,
			StepsTaken: result.StepsTaken,
		})

		progress(out, "sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.Param, paramVal)
	}

	return results, nil
}

func simulate(ctx context.Context, w *arena.World, acfg arena.Config, frames int) (*sim.Result, error) {
	s := sim.New(w)
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}
	simCfg := sim.DefaultConfig()
	simCfg.Arena = acfg
	simCfg.Frames = frames
	return s.Run(ctx, simCfg)
}

func progress(out io.Writer, format string, args ...any) {
	if out != nil {
		fmt.Fprintf(out, format, args...)
	}
}
