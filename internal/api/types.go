package api

import (
	"github.com/shopspring/decimal"
)

// StepResult is the backend's answer for one guided research step.
type StepResult struct {
	Step      string   `json:"step"`
	Ticker    string   `json:"ticker"`
	Response  string   `json:"response"`
	Citations []string `json:"citations"`
	Cached    bool     `json:"cached"`
}

// ChatResult is the backend's answer for a free-form research question.
type ChatResult struct {
	Ticker    string   `json:"ticker"`
	Question  string   `json:"question"`
	Response  string   `json:"response"`
	Citations []string `json:"citations"`
}

// Template names an available research step.
type Template struct {
	Step string `json:"step"`
	Name string `json:"name"`
}

// CompareStock is one side of a stock comparison.
type CompareStock struct {
	Ticker         string   `json:"ticker"`
	Recommendation string   `json:"recommendation"`
	Risk           string   `json:"risk"`
	Growth         string   `json:"growth"`
	Highlights     []string `json:"highlights"`
}

// CompareResult is a side-by-side comparison of up to three stocks.
type CompareResult struct {
	Summary string         `json:"summary"`
	Stocks  []CompareStock `json:"stocks"`
	Winner  string         `json:"winner"`
	Cached  bool           `json:"cached"`
}

// User is the authenticated account returned by the auth endpoints.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
	LastLogin string `json:"last_login,omitempty"`
}

// Session bundles a bearer token with its user.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Quote is a point-in-time price for a single ticker.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Currency      string          `json:"currency"`
	Timestamp     string          `json:"timestamp"`
	MarketState   string          `json:"market_state"`
	Source        string          `json:"source"`
}

// ChartPoint is one candle of historical chart data.
type ChartPoint struct {
	Date   string          `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// Chart is the historical series for one ticker and timeframe.
type Chart struct {
	Ticker    string       `json:"ticker"`
	Timeframe string       `json:"timeframe"`
	Points    []ChartPoint `json:"points"`
}

// Holding is one position in the portfolio. Valuation fields are pointers:
// the backend omits them when no current price is available.
type Holding struct {
	ID             int64            `json:"id"`
	Ticker         string           `json:"ticker"`
	Shares         decimal.Decimal  `json:"shares"`
	PurchasePrice  decimal.Decimal  `json:"purchase_price"`
	PurchaseDate   string           `json:"purchase_date"`
	Notes          string           `json:"notes,omitempty"`
	CurrentPrice   *decimal.Decimal `json:"current_price,omitempty"`
	CurrentValue   *decimal.Decimal `json:"current_value,omitempty"`
	CostBasis      *decimal.Decimal `json:"cost_basis,omitempty"`
	UnrealizedGain *decimal.Decimal `json:"unrealized_gain,omitempty"`
}

// PortfolioSummary aggregates the portfolio's valuation.
type PortfolioSummary struct {
	TotalValue       *decimal.Decimal `json:"total_value"`
	TotalCost        *decimal.Decimal `json:"total_cost"`
	TotalGain        *decimal.Decimal `json:"total_gain"`
	TotalGainPercent *decimal.Decimal `json:"total_gain_percent"`
	HoldingsCount    int              `json:"holdings_count"`
}

// Portfolio is the holdings list with its summary.
type Portfolio struct {
	Holdings []Holding        `json:"holdings"`
	Summary  PortfolioSummary `json:"summary"`
}

// NewHolding is the request body for adding a position.
type NewHolding struct {
	Ticker        string          `json:"ticker"`
	Shares        decimal.Decimal `json:"shares"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	PurchaseDate  string          `json:"purchase_date"`
	Notes         string          `json:"notes,omitempty"`
}

// DoctorItem is one recommendation from the portfolio doctor.
type DoctorItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Reasoning   string `json:"reasoning"`
	Priority    string `json:"priority"`
}

// DoctorReport is the daily portfolio health check.
type DoctorReport struct {
	HealthScore   int          `json:"health_score"`
	ActionItems   []DoctorItem `json:"action_items"`
	RiskAlerts    []DoctorItem `json:"risk_alerts"`
	Opportunities []DoctorItem `json:"opportunities"`
}

// RebalanceTrade is one suggested trade in a rebalancing plan.
type RebalanceTrade struct {
	Ticker            string          `json:"ticker"`
	Action            string          `json:"action"`
	Shares            decimal.Decimal `json:"shares"`
	EstimatedPrice    decimal.Decimal `json:"estimated_price"`
	EstimatedValue    decimal.Decimal `json:"estimated_value"`
	CurrentAllocation decimal.Decimal `json:"current_allocation"`
	TargetAllocation  decimal.Decimal `json:"target_allocation"`
	Reason            string          `json:"reason"`
}

// RebalancePlan is the optimizer's suggested trade set.
type RebalancePlan struct {
	Trades            []RebalanceTrade           `json:"trades"`
	Rationale         string                     `json:"rationale"`
	CurrentAllocation map[string]decimal.Decimal `json:"current_allocation"`
	TargetAllocation  map[string]decimal.Decimal `json:"target_allocation"`
}

// Insight is one generated portfolio observation.
type Insight struct {
	Type    string `json:"type"`
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// InsightsReport is the generated insight list with its summary line.
type InsightsReport struct {
	Insights    []Insight `json:"insights"`
	Summary     string    `json:"summary"`
	GeneratedAt string    `json:"generated_at"`
}

// MarketIndex is one tracked index in the market overview.
type MarketIndex struct {
	Name          string          `json:"name"`
	Symbol        string          `json:"symbol"`
	Value         decimal.Decimal `json:"value"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// MarketMover is one gaining or losing stock in the overview.
type MarketMover struct {
	Ticker        string          `json:"ticker"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// MarketMovers groups the day's gainers and losers.
type MarketMovers struct {
	Gainers []MarketMover `json:"gainers"`
	Losers  []MarketMover `json:"losers"`
}

// MarketSector is one sector's performance.
type MarketSector struct {
	Name          string          `json:"name"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// MarketOverview is the market snapshot for one country.
type MarketOverview struct {
	Country string         `json:"country,omitempty"`
	Indices []MarketIndex  `json:"indices"`
	Movers  *MarketMovers  `json:"movers,omitempty"`
	Sectors []MarketSector `json:"sectors,omitempty"`
}

// Country is one market the overview endpoint supports.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Alert is one configured price alert.
type Alert struct {
	ID               int64            `json:"id"`
	Ticker           string           `json:"ticker"`
	AlertType        string           `json:"alert_type"`
	TargetPrice      *decimal.Decimal `json:"target_price,omitempty"`
	PercentageChange *decimal.Decimal `json:"percentage_change,omitempty"`
	Condition        string           `json:"condition"`
	Active           bool             `json:"active"`
	CreatedAt        string           `json:"created_at,omitempty"`
	TriggeredAt      string           `json:"triggered_at,omitempty"`
}

// NewAlert is the request body for creating an alert.
type NewAlert struct {
	Ticker           string           `json:"ticker"`
	AlertType        string           `json:"alert_type"`
	TargetPrice      *decimal.Decimal `json:"target_price,omitempty"`
	PercentageChange *decimal.Decimal `json:"percentage_change,omitempty"`
	Condition        string           `json:"condition"`
}

// NewsItem is one article attached to a watchlist ticker.
type NewsItem struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	Summary       string `json:"summary,omitempty"`
	AISummary     string `json:"ai_summary,omitempty"`
	AISentiment   string `json:"ai_sentiment,omitempty"`
	TimePublished string `json:"time_published,omitempty"`
}

// TickerSentiment is the aggregated social read for one ticker.
type TickerSentiment struct {
	Score    int    `json:"score"`
	Mentions int    `json:"mentions"`
	Trend    string `json:"trend,omitempty"`
	Summary  string `json:"summary,omitempty"`
}

// AnalyticsEvent is a fire-and-forget telemetry event. The client only
// writes these; it never reads them back.
type AnalyticsEvent struct {
	Event     string                 `json:"event"`
	UserID    string                 `json:"userId"`
	SessionID string                 `json:"sessionId"`
	Timestamp string                 `json:"timestamp"`
	Platform  string                 `json:"platform,omitempty"`
	Version   string                 `json:"version,omitempty"`
	Fields    map[string]interface{} `json:"-"`
}
