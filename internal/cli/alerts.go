package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/stonklab/stonk/config"
	"github.com/stonklab/stonk/internal/api"
)

// newAlertsCmd creates the alerts command tree.
func newAlertsCmd(cfg *config.Config) *cobra.Command {
	alertsCmd := &cobra.Command{
		Use:   "alerts",
		Short: "Manage price alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			alerts, err := app.Client.Alerts(context.Background())
			if err != nil {
				return err
			}
			app.Tracker.PageView("alerts")

			displayAlerts(alerts)
			return nil
		},
	}

	alertsCmd.AddCommand(newAlertAddCmd(cfg))
	alertsCmd.AddCommand(&cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete an alert by its id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid alert id %q", args[0])
			}
			if err := app.Client.DeleteAlert(context.Background(), id); err != nil {
				return err
			}
			DisplaySuccess(fmt.Sprintf("Deleted alert #%d.", id))
			return nil
		},
	})

	return alertsCmd
}

func newAlertAddCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add TICKER",
		Short: "Create a price alert",
		Long: `Create an alert that fires when a price or percentage condition is met.
Examples:
  stonk alerts add AAPL --above 200
  stonk alerts add TSLA --below 150
  stonk alerts add NVDA --percent 5`,
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

			above, _ := cmd.Flags().GetString("above")
			below, _ := cmd.Flags().GetString("below")
			percent, _ := cmd.Flags().GetString("percent")

			alert := api.NewAlert{Ticker: ticker}
			switch {
			case above != "":
				price, err := decimal.NewFromString(above)
				if err != nil {
					return fmt.Errorf("invalid price %q", above)
				}
				alert.AlertType = "price"
				alert.Condition = "above"
				alert.TargetPrice = &price
			case below != "":
				price, err := decimal.NewFromString(below)
				if err != nil {
					return fmt.Errorf("invalid price %q", below)
				}
				alert.AlertType = "price"
				alert.Condition = "below"
				alert.TargetPrice = &price
			case percent != "":
				change, err := decimal.NewFromString(percent)
				if err != nil {
					return fmt.Errorf("invalid percentage %q", percent)
				}
				alert.AlertType = "percent"
				alert.Condition = "change"
				alert.PercentageChange = &change
			default:
				return fmt.Errorf("one of --above, --below, or --percent is required")
			}

			id, err := app.Client.CreateAlert(context.Background(), alert)
			if err != nil {
				return err
			}
			DisplaySuccess(fmt.Sprintf("Created alert #%d for %s.", id, ticker))
			app.Tracker.FeatureUse("alert_add", map[string]interface{}{"ticker": ticker, "type": alert.AlertType})
			return nil
		},
	}

	cmd.Flags().String("above", "", "Fire when the price rises above this value")
	cmd.Flags().String("below", "", "Fire when the price falls below this value")
	cmd.Flags().String("percent", "", "Fire on a daily move of this many percent")
	return cmd
}

func displayAlerts(alerts []api.Alert) {
	if len(alerts) == 0 {
		DisplayInfo("No alerts configured. Use 'stonk alerts add TICKER --above PRICE' to create one.")
		return
	}

	fmt.Println(sectionStyle.Render("🔔 Price Alerts"))
	for _, a := range alerts {
		status := "active"
		if !a.Active {
			status = "inactive"
		}
		if a.TriggeredAt != "" {
			status = "triggered " + a.TriggeredAt
		}

		condition := a.Condition
		if a.TargetPrice != nil {
			condition = fmt.Sprintf("%s %s", a.Condition, a.TargetPrice.StringFixed(2))
		} else if a.PercentageChange != nil {
			condition = fmt.Sprintf("±%s%%", a.PercentageChange.StringFixed(1))
		}

		fmt.Printf("  #%-4d %-8s %-8s %-16s %s\n", a.ID, a.Ticker, a.AlertType, condition, status)
	}
}
