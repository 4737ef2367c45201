package research

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stonklab/stonk/internal/api"
)

type fakeRunner struct {
	mu      sync.Mutex
	calls   int32
	lastReq [4]string
	results map[string]*api.StepResult
	err     error
	delay   time.Duration
	block   chan struct{}
}

func (r *fakeRunner) GuidedStep(ctx context.Context, step, ticker, horizon, riskLevel string) (*api.StepResult, error) {
	atomic.AddInt32(&r.calls, 1)
	r.mu.Lock()
	r.lastReq = [4]string{step, ticker, horizon, riskLevel}
	res := r.results[step]
	err := r.err
	delay := r.delay
	block := r.block
	r.mu.Unlock()
	if block != nil {
		<-block
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	if res == nil {
		res = &api.StepResult{Response: "analysis of " + ticker + " for " + step}
	}
	return res, nil
}

func newTestFlow(r Runner) *Flow {
	return NewFlow(r, nil, 2*time.Second)
}

func TestStepsOrder(t *testing.T) {
	want := []string{"overview", "financials", "moat", "risks", "valuation", "memo", "investment_advice"}
	if len(Steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(Steps), len(want))
	}
	for i, id := range want {
		if Steps[i].ID != id {
			t.Errorf("step %d: got %q, want %q", i, Steps[i].ID, id)
		}
		if StepIndex(id) != i {
			t.Errorf("StepIndex(%q) = %d, want %d", id, StepIndex(id), i)
		}
	}
	if StepIndex("nope") != -1 {
		t.Errorf("StepIndex for unknown step should be -1")
	}
}

func TestRunCachesOneResultPerStep(t *testing.T) {
	runner := &fakeRunner{}
	flow := newTestFlow(runner)
	p := Params{Ticker: "AAPL", Horizon: "1-3 years", RiskLevel: "moderate"}

	res, err := flow.Run(context.Background(), "overview", p)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(res.Response, "AAPL") {
		t.Fatalf("unexpected content %q", res.Response)
	}
	if flow.State("overview") != StateLoaded {
		t.Fatalf("state = %v, want loaded", flow.State("overview"))
	}
	if flow.State("financials") != StateIdle {
		t.Fatalf("other steps must stay idle")
	}

	got, ok := flow.AnalyzedParams("overview")
	if !ok || got != p {
		t.Fatalf("analyzed params = %+v, ok=%v", got, ok)
	}
}

func TestRunReplacesOnRerun(t *testing.T) {
	runner := &fakeRunner{results: map[string]*api.StepResult{
		"overview": {Response: "first"},
	}}
	flow := newTestFlow(runner)

	if _, err := flow.Run(context.Background(), "overview", Params{Ticker: "AAPL"}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	runner.mu.Lock()
	runner.results["overview"] = &api.StepResult{Response: "second"}
	runner.mu.Unlock()
	if _, err := flow.Run(context.Background(), "overview", Params{Ticker: "MSFT"}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	res, ok := flow.Result("overview")
	if !ok || res.Response != "second" {
		t.Fatalf("result = %+v, want replaced", res)
	}
	p, _ := flow.AnalyzedParams("overview")
	if p.Ticker != "MSFT" {
		t.Fatalf("analyzed ticker = %q, want MSFT", p.Ticker)
	}
}

func TestRunEmptyTickerNoNetworkCall(t *testing.T) {
	runner := &fakeRunner{}
	flow := newTestFlow(runner)

	for _, ticker := range []string{"", "   "} {
		if _, err := flow.Run(context.Background(), "overview", Params{Ticker: ticker}); !errors.Is(err, ErrNoTicker) {
			t.Fatalf("ticker %q: err = %v, want ErrNoTicker", ticker, err)
		}
	}
	if n := atomic.LoadInt32(&runner.calls); n != 0 {
		t.Fatalf("backend called %d times, want 0", n)
	}
	if flow.State("overview") != StateIdle {
		t.Fatalf("validation failure must not change step state")
	}
}

func TestRunUnknownStep(t *testing.T) {
	flow := newTestFlow(&fakeRunner{})
	if _, err := flow.Run(context.Background(), "nope", Params{Ticker: "AAPL"}); err == nil {
		t.Fatal("expected error for unknown step")
	}
}

func TestFailurePreservesCachedResult(t *testing.T) {
	runner := &fakeRunner{}
	flow := newTestFlow(runner)
	p := Params{Ticker: "AAPL", Horizon: "1-3 years", RiskLevel: "moderate"}

	if _, err := flow.Run(context.Background(), "overview", p); err != nil {
		t.Fatalf("Run: %v", err)
	}

	runner.mu.Lock()
	runner.err = errors.New("backend down")
	runner.mu.Unlock()
	if _, err := flow.Run(context.Background(), "overview", p); err == nil {
		t.Fatal("expected failure")
	}

	if flow.State("overview") != StateFailed {
		t.Fatalf("state = %v, want failed", flow.State("overview"))
	}
	if flow.Err("overview") == nil {
		t.Fatal("expected recorded error")
	}
	if _, ok := flow.Result("overview"); !ok {
		t.Fatal("failed run must not wipe the cached result")
	}
}

func TestStaleDetection(t *testing.T) {
	runner := &fakeRunner{}
	flow := newTestFlow(runner)
	analyzed := Params{Ticker: "AAPL", Horizon: "1-3 years", RiskLevel: "moderate"}

	if _, err := flow.Run(context.Background(), "overview", analyzed); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if _, stale := flow.Stale("overview", analyzed); stale {
		t.Fatal("identical params must not be stale")
	}

	current := Params{Ticker: "AAPL", Horizon: "5+ years", RiskLevel: "moderate"}
	old, stale := flow.Stale("overview", current)
	if !stale {
		t.Fatal("changed horizon must flag stale")
	}
	if old != analyzed {
		t.Fatalf("stale reported analyzed params %+v, want %+v", old, analyzed)
	}

	// Stale result stays visible until an explicit re-run.
	if _, ok := flow.Result("overview"); !ok {
		t.Fatal("stale result must remain cached")
	}

	if _, err := flow.Reanalyze(context.Background(), "overview", current); err != nil {
		t.Fatalf("Reanalyze: %v", err)
	}
	if _, stale := flow.Stale("overview", current); stale {
		t.Fatal("reanalyzed step must not be stale anymore")
	}
}

func TestStaleUnanalyzedStep(t *testing.T) {
	flow := newTestFlow(&fakeRunner{})
	if _, stale := flow.Stale("overview", Params{Ticker: "AAPL"}); stale {
		t.Fatal("steps without a result are never stale")
	}
}

func TestSupersededResultDiscarded(t *testing.T) {
	block := make(chan struct{})
	runner := &fakeRunner{
		block:   block,
		results: map[string]*api.StepResult{"overview": {Response: "slow"}},
	}
	flow := newTestFlow(runner)

	slowDone := make(chan error, 1)
	go func() {
		_, err := flow.Run(context.Background(), "overview", Params{Ticker: "AAPL"})
		slowDone <- err
	}()

	// Wait for the slow run to be in flight before issuing the newer run.
	deadline := time.After(time.Second)
	for atomic.LoadInt32(&runner.calls) == 0 {
		select {
		case <-deadline:
			t.Fatal("slow run never started")
		case <-time.After(time.Millisecond):
		}
	}

	runner.mu.Lock()
	runner.block = nil
	runner.results["overview"] = &api.StepResult{Response: "fast"}
	runner.mu.Unlock()
	if _, err := flow.Run(context.Background(), "overview", Params{Ticker: "MSFT"}); err != nil {
		t.Fatalf("fast run: %v", err)
	}

	close(block)
	if err := <-slowDone; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("slow run err = %v, want ErrSuperseded", err)
	}

	res, _ := flow.Result("overview")
	if res.Response != "fast" {
		t.Fatalf("result = %q, stale response must not overwrite newer one", res.Response)
	}
	p, _ := flow.AnalyzedParams("overview")
	if p.Ticker != "MSFT" {
		t.Fatalf("params ticker = %q, want MSFT", p.Ticker)
	}
}

func TestTimeoutThenLateResultApplies(t *testing.T) {
	block := make(chan struct{})
	runner := &fakeRunner{block: block}
	flow := NewFlow(runner, nil, 20*time.Millisecond)
	p := Params{Ticker: "AAPL", Horizon: "1-3 years", RiskLevel: "moderate"}

	if _, err := flow.Run(context.Background(), "overview", p); !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if flow.State("overview") != StateFailed {
		t.Fatalf("state = %v, want failed after timeout", flow.State("overview"))
	}

	// The request was never aborted; once it completes the result lands.
	close(block)
	deadline := time.After(time.Second)
	for {
		if _, ok := flow.Result("overview"); ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("late result never applied")
		case <-time.After(time.Millisecond):
		}
	}
	if flow.State("overview") != StateLoaded {
		t.Fatalf("state = %v, want loaded after late result", flow.State("overview"))
	}
}

func TestSelectNextPrevious(t *testing.T) {
	runner := &fakeRunner{}
	flow := newTestFlow(runner)

	if i, s := flow.Current(); i != 0 || s.ID != "overview" {
		t.Fatalf("initial step = %d %q", i, s.ID)
	}

	needsRun, err := flow.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if !needsRun {
		t.Fatal("unanalyzed step must report it needs a run")
	}
	if i, _ := flow.Current(); i != 1 {
		t.Fatalf("index = %d, want 1", i)
	}

	if _, err := flow.Run(context.Background(), "overview", Params{Ticker: "AAPL"}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	needsRun, err = flow.Previous()
	if err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if needsRun {
		t.Fatal("analyzed step must not need a run")
	}

	if moved, err := flow.Previous(); err != nil || moved {
		t.Fatalf("Previous at first step: moved=%v err=%v", moved, err)
	}

	if _, err := flow.Select(99); err == nil {
		t.Fatal("out-of-range Select must fail")
	}
}

func TestSelectRefusedWhileLoading(t *testing.T) {
	block := make(chan struct{})
	runner := &fakeRunner{block: block}
	flow := newTestFlow(runner)

	done := make(chan struct{})
	go func() {
		flow.Run(context.Background(), "overview", Params{Ticker: "AAPL"})
		close(done)
	}()

	deadline := time.After(time.Second)
	for flow.State("overview") != StateLoading {
		select {
		case <-deadline:
			t.Fatal("run never reached loading state")
		case <-time.After(time.Millisecond):
		}
	}

	if _, err := flow.Select(1); !errors.Is(err, ErrBusy) {
		t.Fatalf("Select during load: err = %v, want ErrBusy", err)
	}

	close(block)
	<-done
	if _, err := flow.Select(1); err != nil {
		t.Fatalf("Select after load: %v", err)
	}
}
