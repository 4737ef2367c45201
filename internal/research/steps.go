package research

// Step is one stage of the guided research sequence.
type Step struct {
	ID   string
	Name string
	Icon string
}

// Steps is the fixed research sequence. Order defines both sidebar display
// and next/previous navigation.
var Steps = []Step{
	{ID: "overview", Name: "Business Overview", Icon: "🏢"},
	{ID: "financials", Name: "Financial Analysis", Icon: "💰"},
	{ID: "moat", Name: "Competitive Moat", Icon: "🏰"},
	{ID: "risks", Name: "Risk Assessment", Icon: "⚠️"},
	{ID: "valuation", Name: "Valuation", Icon: "📈"},
	{ID: "memo", Name: "Investment Memo", Icon: "📝"},
	{ID: "investment_advice", Name: "Investment Advice by AI", Icon: "🤖"},
}

// StepIndex returns the position of a step id in the sequence, or -1.
func StepIndex(id string) int {
	for i, s := range Steps {
		if s.ID == id {
			return i
		}
	}
	return -1
}
