package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/stonklab/stonk/config"
	"github.com/stonklab/stonk/internal/api"
	"github.com/stonklab/stonk/internal/logger"
	"github.com/stonklab/stonk/internal/quote"
)

// newPriceCmd creates the price command.
func newPriceCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price TICKER",
		Short: "Show the current price for a ticker",
		Long: `Fetch the latest quote from the research backend, falling back to a
direct Yahoo Finance lookup when the backend is unreachable.
Example: stonk price AAPL`,
		Args: cobra.ExactArgs(1),
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

			q, err := app.Client.Price(context.Background(), ticker)
			if err != nil {
				logger.Debug("backend price lookup failed, trying direct: %v", err)
				snap, derr := quote.Get(ticker)
				if derr != nil {
					return fmt.Errorf("price lookup failed: %w", err)
				}
				q = &api.Quote{
					Symbol:        snap.Symbol,
					Price:         snap.Price,
					Change:        snap.Change,
					ChangePercent: snap.ChangePercent,
					Currency:      snap.Currency,
					MarketState:   snap.MarketState,
					Source:        snap.Source,
				}
			}

			displayQuote(q)
			app.Tracker.FeatureUse("price", map[string]interface{}{"ticker": ticker, "source": q.Source})
			return nil
		},
	}

	cmd.AddCommand(newChartCmd(cfg))
	return cmd
}

func displayQuote(q *api.Quote) {
	arrow := "▲"
	style := successStyle
	if q.Change.IsNegative() {
		arrow = "▼"
		style = errorStyle
	}

	line := fmt.Sprintf("📈 %s  %s %s  %s %s (%s%%)",
		q.Symbol, q.Price.StringFixed(2), q.Currency,
		arrow, q.Change.StringFixed(2), q.ChangePercent.StringFixed(2))
	fmt.Println(style.Render(line))
	if q.MarketState != "" {
		fmt.Println(pendingStyle.Render(fmt.Sprintf("Market: %s | Source: %s", q.MarketState, q.Source)))
	}
}

// newChartCmd creates the price chart subcommand.
func newChartCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart TICKER",
		Short: "Show historical prices for a ticker",
		Args:  cobra.ExactArgs(1),
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
			timeframe, _ := cmd.Flags().GetString("timeframe")

			chart, err := app.Client.Chart(context.Background(), ticker, timeframe)
			if err != nil {
				return err
			}

			fmt.Println(sectionStyle.Render(fmt.Sprintf("📊 %s (%s)", chart.Ticker, chart.Timeframe)))
			for _, p := range chart.Points {
				change := decimal.Zero
				if !p.Open.IsZero() {
					change = p.Close.Sub(p.Open).Div(p.Open).Mul(decimal.NewFromInt(100))
				}
				fmt.Printf("  %s  O %s  H %s  L %s  C %s  (%s%%)\n",
					p.Date, p.Open.StringFixed(2), p.High.StringFixed(2),
					p.Low.StringFixed(2), p.Close.StringFixed(2), change.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().String("timeframe", "1M", "Chart timeframe (1D, 1W, 1M, 3M, 1Y, 5Y)")
	return cmd
}

// newMarketCmd creates the market overview command.
func newMarketCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Show the market overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			country, _ := cmd.Flags().GetString("country")
			overview, err := app.Client.MarketOverview(context.Background(), country)
			if err != nil {
				return err
			}
			app.Tracker.PageView("market")

			displayMarketOverview(overview)
			return nil
		},
	}

	cmd.Flags().String("country", "", "Market country code (e.g. US, IN)")

	cmd.AddCommand(&cobra.Command{
		Use:   "countries",
		Short: "List supported market countries",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			countries, err := app.Client.MarketCountries(context.Background())
			if err != nil {
				return err
			}
			for _, c := range countries {
				fmt.Printf("  %s  %s\n", c.Code, c.Name)
			}
			return nil
		},
	})

	return cmd
}

func displayMarketOverview(overview *api.MarketOverview) {
	var content strings.Builder

	content.WriteString("🌐 Market Overview")
	if overview.Country != "" {
		content.WriteString(" (" + overview.Country + ")")
	}
	content.WriteString("\n\n")

	content.WriteString(sectionStyle.Render("Indices") + "\n")
	for _, idx := range overview.Indices {
		content.WriteString(fmt.Sprintf("  %-24s %12s  %s%%\n",
			idx.Name, idx.Value.StringFixed(2), idx.ChangePercent.StringFixed(2)))
	}

	if overview.Movers != nil {
		content.WriteString("\n" + sectionStyle.Render("Top Gainers") + "\n")
		for _, m := range overview.Movers.Gainers {
			content.WriteString(fmt.Sprintf("  %-8s %10s  +%s%%\n",
				m.Ticker, m.Price.StringFixed(2), m.ChangePercent.StringFixed(2)))
		}
		content.WriteString("\n" + sectionStyle.Render("Top Losers") + "\n")
		for _, m := range overview.Movers.Losers {
			content.WriteString(fmt.Sprintf("  %-8s %10s  %s%%\n",
				m.Ticker, m.Price.StringFixed(2), m.ChangePercent.StringFixed(2)))
		}
	}

	if len(overview.Sectors) > 0 {
		content.WriteString("\n" + sectionStyle.Render("Sectors") + "\n")
		for _, s := range overview.Sectors {
			content.WriteString(fmt.Sprintf("  %-24s %s%%\n", s.Name, s.ChangePercent.StringFixed(2)))
		}
	}

	fmt.Println(resultStyle.Render(strings.TrimRight(content.String(), "\n")))
}
