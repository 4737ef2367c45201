package api

import (
	"context"
	"sort"
)

type guidedStepRequest struct {
	Step      string `json:"step"`
	Ticker    string `json:"ticker"`
	Horizon   string `json:"horizon"`
	RiskLevel string `json:"riskLevel"`
}

// GuidedStep executes one guided research step for the given parameters.
func (c *Client) GuidedStep(ctx context.Context, step, ticker, horizon, riskLevel string) (*StepResult, error) {
	var result StepResult
	err := c.post(ctx, "/api/research/guided", guidedStepRequest{
		Step:      step,
		Ticker:    ticker,
		Horizon:   horizon,
		RiskLevel: riskLevel,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type chatRequest struct {
	Ticker   string `json:"ticker"`
	Question string `json:"question"`
}

// Chat sends a free-form research question about a ticker.
func (c *Client) Chat(ctx context.Context, ticker, question string) (*ChatResult, error) {
	var result ChatResult
	if err := c.post(ctx, "/api/research/chat", chatRequest{Ticker: ticker, Question: question}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type compareRequest struct {
	Tickers []string `json:"tickers"`
}

// Compare requests a side-by-side comparison of the given tickers.
func (c *Client) Compare(ctx context.Context, tickers []string) (*CompareResult, error) {
	var result CompareResult
	if err := c.post(ctx, "/api/research/compare", compareRequest{Tickers: tickers}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Templates lists the research steps the backend knows about, sorted by
// step id for stable display.
func (c *Client) Templates(ctx context.Context) ([]Template, error) {
	var payload struct {
		Templates map[string]Template `json:"templates"`
	}
	if err := c.get(ctx, "/api/research/templates", nil, &payload); err != nil {
		return nil, err
	}

	templates := make([]Template, 0, len(payload.Templates))
	for step, tmpl := range payload.Templates {
		if tmpl.Step == "" {
			tmpl.Step = step
		}
		templates = append(templates, tmpl)
	}
	sort.Slice(templates, func(i, j int) bool { return templates[i].Step < templates[j].Step })
	return templates, nil
}
