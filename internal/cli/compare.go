package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stonklab/stonk/config"
)

// newCompareCmd creates the compare command.
func newCompareCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "compare TICKER TICKER [TICKER]",
		Short: "Compare two or three stocks side by side",
		Long: `Run a head-to-head comparison of two or three tickers.
Example: stonk compare AAPL MSFT GOOGL`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			tickers := make([]string, len(args))
			for i, arg := range args {
				t := strings.ToUpper(strings.TrimSpace(arg))
				if err := validateTicker(t); err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				tickers[i] = t
			}

			fmt.Printf("🔄 Comparing %s...\n\n", strings.Join(tickers, " vs "))
			result, err := app.Client.Compare(context.Background(), tickers)
			if err != nil {
				return err
			}
			app.Tracker.FeatureUse("compare", map[string]interface{}{"tickers": tickers})

			var content strings.Builder
			content.WriteString(renderBlocks(result.Summary))
			for _, stock := range result.Stocks {
				content.WriteString("\n\n")
				content.WriteString(sectionStyle.Render(fmt.Sprintf("📊 %s", stock.Ticker)))
				content.WriteString(fmt.Sprintf("\nRecommendation: %s", stock.Recommendation))
				content.WriteString(fmt.Sprintf("\nRisk: %s | Growth: %s", stock.Risk, stock.Growth))
				for _, h := range stock.Highlights {
					content.WriteString(fmt.Sprintf("\n  • %s", h))
				}
			}
			if result.Winner != "" {
				content.WriteString("\n\n")
				content.WriteString(successStyle.Render(fmt.Sprintf("🏆 Winner: %s", result.Winner)))
			}

			fmt.Println(resultStyle.Render(content.String()))
			fmt.Println(disclaimerStyle.Render("⚠️  " + adviceDisclaimer))
			return nil
		},
	}
}
