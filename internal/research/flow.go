// Package research drives the guided multi-step research flow: a fixed
// ordered step sequence with one cached result per step, staleness
// detection against the current parameters, and explicit re-analysis.
package research

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stonklab/stonk/internal/analytics"
	"github.com/stonklab/stonk/internal/api"
)

var (
	// ErrNoTicker is returned before any network call when no ticker is set.
	ErrNoTicker = errors.New("please enter a ticker symbol")
	// ErrTimeout ends the loading state when a step exceeds the wall-clock
	// limit. The underlying request is not aborted.
	ErrTimeout = errors.New("analysis timed out, please try again")
	// ErrBusy rejects step switching while the active step is loading.
	ErrBusy = errors.New("analysis in progress")
	// ErrSuperseded marks a result that lost to a newer run of the same step.
	ErrSuperseded = errors.New("superseded by a newer analysis")
)

// State is the lifecycle of a single step, independent across steps.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

// Params is the (ticker, horizon, riskLevel) triple a result was produced
// under.
type Params struct {
	Ticker    string
	Horizon   string
	RiskLevel string
}

// Equal reports whether both triples match field for field.
func (p Params) Equal(other Params) bool {
	return p == other
}

// Runner is the backend call the flow depends on.
type Runner interface {
	GuidedStep(ctx context.Context, step, ticker, horizon, riskLevel string) (*api.StepResult, error)
}

type slot struct {
	state  State
	result *api.StepResult
	params Params
	gen    uint64
	err    error
}

// Flow owns the per-step cache and state machine. Exactly one result and
// one analyzed-params record exist per step; re-running replaces both.
type Flow struct {
	mu      sync.Mutex
	client  Runner
	tracker *analytics.Emitter
	timeout time.Duration

	current int
	slots   map[string]*slot
}

// NewFlow creates a flow positioned at the first step, all steps idle.
func NewFlow(client Runner, tracker *analytics.Emitter, stepTimeout time.Duration) *Flow {
	slots := make(map[string]*slot, len(Steps))
	for _, s := range Steps {
		slots[s.ID] = &slot{}
	}
	return &Flow{
		client:  client,
		tracker: tracker,
		timeout: stepTimeout,
		slots:   slots,
	}
}

// Current returns the active step index and definition.
func (f *Flow) Current() (int, Step) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current, Steps[f.current]
}

// Select makes the step at index active. It reports whether the step still
// needs a run (no cached result). Switching is refused while the active
// step is loading.
func (f *Flow) Select(index int) (bool, error) {
	if index < 0 || index >= len(Steps) {
		return false, fmt.Errorf("step index %d out of range", index)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slots[Steps[f.current].ID].state == StateLoading {
		return false, ErrBusy
	}
	f.current = index
	return f.slots[Steps[index].ID].result == nil, nil
}

// Next advances to the following step when possible.
func (f *Flow) Next() (bool, error) {
	f.mu.Lock()
	current := f.current
	f.mu.Unlock()
	if current >= len(Steps)-1 {
		return false, nil
	}
	return f.Select(current + 1)
}

// Previous steps back when possible.
func (f *Flow) Previous() (bool, error) {
	f.mu.Lock()
	current := f.current
	f.mu.Unlock()
	if current <= 0 {
		return false, nil
	}
	return f.Select(current - 1)
}

// Run executes one research step. On success the step's result and
// analyzed params are replaced together; other steps are never touched.
// A failed or timed-out run leaves previously cached results intact.
func (f *Flow) Run(ctx context.Context, stepID string, p Params) (*api.StepResult, error) {
	if StepIndex(stepID) < 0 {
		return nil, fmt.Errorf("unknown step %q", stepID)
	}
	if strings.TrimSpace(p.Ticker) == "" {
		return nil, ErrNoTicker
	}

	f.mu.Lock()
	sl := f.slots[stepID]
	sl.gen++
	gen := sl.gen
	sl.state = StateLoading
	sl.err = nil
	f.mu.Unlock()

	type outcome struct {
		result *api.StepResult
		err    error
	}
	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		result, err := f.client.GuidedStep(ctx, stepID, p.Ticker, p.Horizon, p.RiskLevel)
		done <- outcome{result, err}
	}()

	timer := time.NewTimer(f.timeout)
	defer timer.Stop()

	select {
	case out := <-done:
		return f.finish(stepID, gen, p, out.result, out.err, start)
	case <-timer.C:
		// The transport call keeps running; if it eventually succeeds and
		// no newer run was issued, the late result is still applied.
		go func() {
			out := <-done
			f.finish(stepID, gen, p, out.result, out.err, start)
		}()
		f.mu.Lock()
		if sl.gen == gen {
			sl.state = StateFailed
			sl.err = ErrTimeout
		}
		f.mu.Unlock()
		f.tracker.StockAnalysis(p.Ticker, stepID, false)
		f.tracker.TrackError(ErrTimeout, map[string]interface{}{"ticker": p.Ticker, "step": stepID})
		return nil, ErrTimeout
	}
}

// Reanalyze re-runs a step after the user confirmed the staleness banner.
func (f *Flow) Reanalyze(ctx context.Context, stepID string, p Params) (*api.StepResult, error) {
	return f.Run(ctx, stepID, p)
}

// finish applies an outcome only when gen still identifies the latest run
// for the slot; older in-flight runs are discarded.
func (f *Flow) finish(stepID string, gen uint64, p Params, result *api.StepResult, err error, start time.Time) (*api.StepResult, error) {
	f.mu.Lock()
	sl := f.slots[stepID]
	if sl.gen != gen {
		f.mu.Unlock()
		return nil, ErrSuperseded
	}

	if err != nil {
		sl.state = StateFailed
		sl.err = err
		f.mu.Unlock()
		f.tracker.StockAnalysis(p.Ticker, stepID, false)
		f.tracker.TrackError(err, map[string]interface{}{"ticker": p.Ticker, "step": stepID})
		return nil, err
	}

	sl.state = StateLoaded
	sl.result = result
	sl.params = p
	sl.err = nil
	f.mu.Unlock()

	f.tracker.StockAnalysis(p.Ticker, stepID, true)
	f.tracker.Track("analysis_duration", map[string]interface{}{
		"ticker":    p.Ticker,
		"step":      stepID,
		"duration":  time.Since(start).Milliseconds(),
		"horizon":   p.Horizon,
		"riskLevel": p.RiskLevel,
	})
	return result, nil
}

// Result returns the cached result for a step.
func (f *Flow) Result(stepID string) (*api.StepResult, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sl, ok := f.slots[stepID]
	if !ok || sl.result == nil {
		return nil, false
	}
	return sl.result, true
}

// AnalyzedParams returns the triple the step's cached result was produced
// under.
func (f *Flow) AnalyzedParams(stepID string) (Params, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sl, ok := f.slots[stepID]
	if !ok || sl.result == nil {
		return Params{}, false
	}
	return sl.params, true
}

// Stale reports whether the cached result for a step was produced under
// different parameters than current. The cached result stays visible; only
// an explicit Reanalyze replaces it.
func (f *Flow) Stale(stepID string, current Params) (Params, bool) {
	analyzed, ok := f.AnalyzedParams(stepID)
	if !ok {
		return Params{}, false
	}
	return analyzed, !analyzed.Equal(current)
}

// State returns a step's lifecycle state.
func (f *Flow) State(stepID string) State {
	f.mu.Lock()
	defer f.mu.Unlock()
	sl, ok := f.slots[stepID]
	if !ok {
		return StateIdle
	}
	return sl.state
}

// Err returns the step's last error, nil after a successful run.
func (f *Flow) Err(stepID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sl, ok := f.slots[stepID]
	if !ok {
		return nil
	}
	return sl.err
}

// Completed reports whether a step has a cached result.
func (f *Flow) Completed(stepID string) bool {
	_, ok := f.Result(stepID)
	return ok
}
