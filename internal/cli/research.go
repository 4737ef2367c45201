package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stonklab/stonk/config"
	"github.com/stonklab/stonk/internal/research"
)

// newResearchCmd creates the research command.
func newResearchCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "research [TICKER]",
		Short: "Run the guided research flow for a ticker",
		Long: `Walk a ticker through the step-by-step research flow.
Example: stonk research AAPL`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			ticker := ""
			if len(args) > 0 {
				ticker = strings.ToUpper(strings.TrimSpace(args[0]))
				if err := validateTicker(ticker); err != nil {
					return err
				}
			}

			if step, _ := cmd.Flags().GetString("step"); step != "" {
				return runSingleStep(app, ticker, step,
					mustFlag(cmd, "horizon"), mustFlag(cmd, "risk"))
			}

			return runInteractiveResearch(app, ticker)
		},
	}

	cmd.Flags().String("step", "", "Run a single step non-interactively (overview, financials, moat, risks, valuation, memo, investment_advice)")
	cmd.Flags().String("horizon", defaultHorizon, "Investment horizon (0-1 year, 1-3 years, 3-5 years, 5+ years)")
	cmd.Flags().String("risk", defaultRisk, "Risk tolerance (conservative, moderate, aggressive)")

	cmd.AddCommand(newStepsCmd(cfg))

	return cmd
}

// newStepsCmd lists the research steps the backend offers.
func newStepsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the available research steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			templates, err := app.Client.Templates(context.Background())
			if err != nil {
				// The local sequence mirrors the backend's; show it offline.
				for i, step := range research.Steps {
					fmt.Printf("  %d. %-20s %s\n", i+1, step.ID, step.Name)
				}
				return nil
			}

			for i, t := range templates {
				fmt.Printf("  %d. %-20s %s\n", i+1, t.Step, t.Name)
			}
			return nil
		},
	}
}

func mustFlag(cmd *cobra.Command, name string) string {
	val, _ := cmd.Flags().GetString(name)
	return val
}

// runSingleStep runs exactly one step and prints the result, for scripting.
func runSingleStep(app *App, ticker, stepID, horizon, risk string) error {
	idx := research.StepIndex(stepID)
	if idx < 0 {
		return fmt.Errorf("unknown step %q", stepID)
	}
	if ticker == "" {
		return fmt.Errorf("a ticker is required with --step")
	}

	if _, err := app.Flow.Select(idx); err != nil {
		return err
	}

	params := research.Params{Ticker: ticker, Horizon: horizon, RiskLevel: risk}
	fmt.Printf("🔄 Analyzing %s for %s...\n", research.Steps[idx].Name, ticker)
	result, err := app.Flow.Run(context.Background(), stepID, params)
	if err != nil {
		return err
	}

	DisplayStepResult(research.Steps[idx], result)
	return nil
}
