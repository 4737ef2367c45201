package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/stonklab/stonk/internal/research"
)

var tickerRe = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// Horizons and risk levels offered during guided research.
var (
	horizonOptions = []string{"0-1 year", "1-3 years", "3-5 years", "5+ years"}
	riskOptions    = []string{"conservative", "moderate", "aggressive"}
)

const (
	defaultHorizon = "1-3 years"
	defaultRisk    = "moderate"
)

func validateTicker(val interface{}) error {
	str := strings.TrimSpace(strings.ToUpper(val.(string)))
	if len(str) == 0 {
		return fmt.Errorf("ticker symbol cannot be empty")
	}
	if len(str) > 10 {
		return fmt.Errorf("ticker symbol too long (max 10 characters)")
	}
	if !tickerRe.MatchString(str) {
		return fmt.Errorf("invalid ticker format (use letters, numbers, dots, and hyphens only)")
	}
	return nil
}

// PromptForTicker prompts the user to enter a stock ticker symbol.
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Enter the stock ticker symbol (e.g., AAPL, MSFT, GOOGL):",
		Help:    "The ticker you want to research",
	}

	if err := survey.AskOne(prompt, &ticker, survey.WithValidator(validateTicker)); err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(ticker)), nil
}

// PromptForHorizon asks for the investment horizon.
func PromptForHorizon(current string) (string, error) {
	if current == "" {
		current = defaultHorizon
	}
	var horizon string
	prompt := &survey.Select{
		Message: "Select your investment horizon:",
		Options: horizonOptions,
		Help:    "How long you plan to hold the position. This shapes the analysis.",
		Default: current,
	}
	if err := survey.AskOne(prompt, &horizon); err != nil {
		return "", err
	}
	return horizon, nil
}

// PromptForRiskLevel asks for the risk tolerance.
func PromptForRiskLevel(current string) (string, error) {
	if current == "" {
		current = defaultRisk
	}
	var risk string
	prompt := &survey.Select{
		Message: "Select your risk tolerance:",
		Options: riskOptions,
		Help:    "How much volatility you are comfortable with.",
		Default: current,
	}
	if err := survey.AskOne(prompt, &risk); err != nil {
		return "", err
	}
	return risk, nil
}

// PromptResearchParams collects the full parameter triple.
func PromptResearchParams(ticker string) (research.Params, error) {
	var err error
	if ticker == "" {
		ticker, err = PromptForTicker()
		if err != nil {
			return research.Params{}, err
		}
	}
	horizon, err := PromptForHorizon("")
	if err != nil {
		return research.Params{}, err
	}
	risk, err := PromptForRiskLevel("")
	if err != nil {
		return research.Params{}, err
	}
	return research.Params{Ticker: ticker, Horizon: horizon, RiskLevel: risk}, nil
}

// PromptForReanalyze asks whether a stale step should be re-run.
func PromptForReanalyze(stepName string) (bool, error) {
	var confirmed bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Your settings changed since %q was analyzed. Re-analyze with the new settings?", stepName),
		Default: true,
	}
	err := survey.AskOne(prompt, &confirmed)
	return confirmed, err
}

// PromptForCredentials asks for email and password.
func PromptForCredentials() (string, string, error) {
	var email string
	if err := survey.AskOne(&survey.Input{Message: "Email:"}, &email, survey.WithValidator(survey.Required)); err != nil {
		return "", "", err
	}

	var password string
	if err := survey.AskOne(&survey.Password{Message: "Password:"}, &password, survey.WithValidator(survey.Required)); err != nil {
		return "", "", err
	}

	return strings.TrimSpace(email), password, nil
}

// PromptForName asks for a display name during signup.
func PromptForName() (string, error) {
	var name string
	if err := survey.AskOne(&survey.Input{Message: "Name:"}, &name, survey.WithValidator(survey.Required)); err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}
