package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/stonklab/stonk/config"
	"github.com/stonklab/stonk/internal/api"
)

// newPortfolioCmd creates the portfolio command tree.
func newPortfolioCmd(cfg *config.Config) *cobra.Command {
	portfolioCmd := &cobra.Command{
		Use:     "portfolio",
		Aliases: []string{"pf"},
		Short:   "Manage and analyze your holdings",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			portfolio, err := app.Client.PortfolioSummary(context.Background())
			if err != nil {
				return err
			}
			app.Tracker.PageView("portfolio")

			displayPortfolio(portfolio)
			return nil
		},
	}

	portfolioCmd.AddCommand(newHoldingAddCmd(cfg))
	portfolioCmd.AddCommand(newHoldingRemoveCmd(cfg))
	portfolioCmd.AddCommand(newDoctorCmd(cfg))
	portfolioCmd.AddCommand(newRebalanceCmd(cfg))
	portfolioCmd.AddCommand(newInsightsCmd(cfg))
	portfolioCmd.AddCommand(newSentimentCmd(cfg))

	return portfolioCmd
}

func newHoldingAddCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add TICKER SHARES PRICE",
		Short: "Add a position",
		Long: `Record a position in your portfolio.
Example: stonk portfolio add AAPL 10 187.50 --date 2025-01-15`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			ticker := strings.ToUpper(strings.TrimSpace(args[0]))
			if err := validateTicker(ticker); err != nil {
				return err
			}
			shares, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid share count %q", args[1])
			}
			price, err := decimal.NewFromString(args[2])
			if err != nil {
				return fmt.Errorf("invalid price %q", args[2])
			}

			date, _ := cmd.Flags().GetString("date")
			if date == "" {
				date = time.Now().Format("2006-01-02")
			} else if _, err := time.Parse("2006-01-02", date); err != nil {
				return fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
			}
			notes, _ := cmd.Flags().GetString("notes")

			id, err := app.Client.AddHolding(context.Background(), api.NewHolding{
				Ticker:        ticker,
				Shares:        shares,
				PurchasePrice: price,
				PurchaseDate:  date,
				Notes:         notes,
			})
			if err != nil {
				return err
			}

			DisplaySuccess(fmt.Sprintf("Added %s %s @ %s (holding #%d).",
				shares.String(), ticker, price.StringFixed(2), id))
			app.Tracker.FeatureUse("portfolio_add", map[string]interface{}{"ticker": ticker})
			return nil
		},
	}

	cmd.Flags().String("date", "", "Purchase date in YYYY-MM-DD format (today if not provided)")
	cmd.Flags().String("notes", "", "Free-form note for this position")
	return cmd
}

func newHoldingRemoveCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a position by its id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			var id int64
			if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
				return fmt.Errorf("invalid holding id %q", args[0])
			}

			if err := app.Client.DeleteHolding(context.Background(), id); err != nil {
				return err
			}
			DisplaySuccess(fmt.Sprintf("Removed holding #%d.", id))
			return nil
		},
	}
}

func newDoctorCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run the portfolio health check",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			fmt.Println("🔄 Checking portfolio health...")
			report, err := app.Client.PortfolioDoctor(context.Background())
			if err != nil {
				return err
			}
			app.Tracker.FeatureUse("portfolio_doctor", nil)

			displayDoctorReport(report)
			return nil
		},
	}
}

func newRebalanceCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "rebalance",
		Short: "Suggest trades to rebalance the portfolio",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			fmt.Println("🔄 Computing rebalancing plan...")
			plan, err := app.Client.Rebalance(context.Background())
			if err != nil {
				return err
			}
			app.Tracker.FeatureUse("rebalance", nil)

			displayRebalancePlan(plan)
			fmt.Println(disclaimerStyle.Render("⚠️  " + adviceDisclaimer))
			return nil
		},
	}
}

func newInsightsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show generated portfolio insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.Client.Insights(context.Background())
			if err != nil {
				return err
			}
			app.Tracker.FeatureUse("insights", nil)

			if report.Summary != "" {
				fmt.Println(headerStyle.Render(report.Summary))
			}
			for _, insight := range report.Insights {
				fmt.Printf("%s %s\n", insight.Icon, sectionStyle.Render(insight.Title))
				fmt.Printf("   %s\n", insight.Message)
				if insight.Details != "" {
					fmt.Println(pendingStyle.Render("   " + insight.Details))
				}
			}
			return nil
		},
	}
}

func newSentimentCmd(cfg *config.Config) *cobra.Command {
	sentimentCmd := &cobra.Command{
		Use:   "sentiment",
		Short: "Show social sentiment for your holdings",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			sentiment, err := app.Client.PortfolioSentiment(context.Background())
			if err != nil {
				return err
			}
			app.Tracker.FeatureUse("sentiment", nil)

			displaySentiment(sentiment)
			return nil
		},
	}

	sentimentCmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Ask the backend to refresh sentiment data",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Client.RefreshSentiment(context.Background()); err != nil {
				return err
			}
			DisplaySuccess("Sentiment refresh started.")
			return nil
		},
	})

	return sentimentCmd
}

func displayPortfolio(portfolio *api.Portfolio) {
	if len(portfolio.Holdings) == 0 {
		DisplayInfo("Your portfolio is empty. Use 'stonk portfolio add' to record a position.")
		return
	}

	var content strings.Builder
	content.WriteString("💼 Portfolio\n\n")
	for _, h := range portfolio.Holdings {
		line := fmt.Sprintf("  #%-4d %-8s %s @ %s", h.ID, h.Ticker, h.Shares.String(), h.PurchasePrice.StringFixed(2))
		if h.CurrentValue != nil {
			line += fmt.Sprintf("  now %s", h.CurrentValue.StringFixed(2))
		}
		if h.UnrealizedGain != nil {
			sign := "+"
			if h.UnrealizedGain.IsNegative() {
				sign = ""
			}
			line += fmt.Sprintf("  (%s%s)", sign, h.UnrealizedGain.StringFixed(2))
		}
		content.WriteString(line + "\n")
	}

	s := portfolio.Summary
	content.WriteString(fmt.Sprintf("\n%d holdings", s.HoldingsCount))
	if s.TotalValue != nil && s.TotalCost != nil {
		content.WriteString(fmt.Sprintf(" | value %s | cost %s", s.TotalValue.StringFixed(2), s.TotalCost.StringFixed(2)))
	}
	if s.TotalGain != nil {
		content.WriteString(fmt.Sprintf(" | gain %s", s.TotalGain.StringFixed(2)))
		if s.TotalGainPercent != nil {
			content.WriteString(fmt.Sprintf(" (%s%%)", s.TotalGainPercent.StringFixed(2)))
		}
	}

	fmt.Println(resultStyle.Render(strings.TrimRight(content.String(), "\n")))
}

func displayDoctorReport(report *api.DoctorReport) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("🩺 Portfolio Health: %d/100", report.HealthScore)))

	sections := []struct {
		name  string
		icon  string
		items []api.DoctorItem
	}{
		{"Action Items", "📌", report.ActionItems},
		{"Risk Alerts", "⚠️", report.RiskAlerts},
		{"Opportunities", "💡", report.Opportunities},
	}

	for _, section := range sections {
		if len(section.items) == 0 {
			continue
		}
		fmt.Println(sectionStyle.Render(section.icon + " " + section.name))
		for _, item := range section.items {
			fmt.Printf("  [%s] %s\n", strings.ToUpper(item.Priority), item.Title)
			fmt.Printf("      %s\n", item.Description)
			if item.Action != "" {
				fmt.Println(infoStyle.Render("      → " + item.Action))
			}
		}
		fmt.Println()
	}
}

func displayRebalancePlan(plan *api.RebalancePlan) {
	var content strings.Builder
	content.WriteString("⚖️  Rebalancing Plan\n\n")

	for _, trade := range plan.Trades {
		content.WriteString(fmt.Sprintf("  %-4s %-8s %s shares ≈ %s  (%s%% → %s%%)\n",
			strings.ToUpper(trade.Action), trade.Ticker, trade.Shares.String(),
			trade.EstimatedValue.StringFixed(2),
			trade.CurrentAllocation.StringFixed(1), trade.TargetAllocation.StringFixed(1)))
		if trade.Reason != "" {
			content.WriteString(pendingStyle.Render("       "+trade.Reason) + "\n")
		}
	}

	if plan.Rationale != "" {
		content.WriteString("\n" + renderBlocks(plan.Rationale))
	}

	fmt.Println(resultStyle.Render(strings.TrimRight(content.String(), "\n")))
}

func displaySentiment(sentiment map[string]api.TickerSentiment) {
	if len(sentiment) == 0 {
		DisplayInfo("No sentiment data yet. Try 'stonk portfolio sentiment refresh'.")
		return
	}

	tickers := make([]string, 0, len(sentiment))
	for ticker := range sentiment {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	fmt.Println(sectionStyle.Render("🗣  Social Sentiment"))
	for _, ticker := range tickers {
		s := sentiment[ticker]
		line := fmt.Sprintf("  %-8s score %d (%d mentions)", ticker, s.Score, s.Mentions)
		if s.Trend != "" {
			line += "  " + s.Trend
		}
		fmt.Println(line)
		if s.Summary != "" {
			fmt.Println(pendingStyle.Render("    " + truncateString(s.Summary, 160)))
		}
	}
}
