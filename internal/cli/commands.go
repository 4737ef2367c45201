package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stonklab/stonk/config"
	"github.com/stonklab/stonk/internal/logger"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "stonk",
		Short: "stonk - AI-Powered Stock Research",
		Long: `stonk is a guided stock research client. It walks a ticker through a
fixed sequence of analysis steps (overview, financials, moat, risks,
valuation, memo, advice), answers follow-up questions, and manages your
watchlist, portfolio and price alerts.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				cfg.Debug = true
				cfg.LogLevel = "debug"
			}
			logger.Init(cfg.LogLevel)
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start the guided research session.
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()
			return runInteractiveResearch(app, "")
		},
	}

	rootCmd.AddCommand(newResearchCmd(cfg))
	rootCmd.AddCommand(newChatCmd(cfg))
	rootCmd.AddCommand(newCompareCmd(cfg))
	rootCmd.AddCommand(newPriceCmd(cfg))
	rootCmd.AddCommand(newMarketCmd(cfg))
	rootCmd.AddCommand(newWatchlistCmd(cfg))
	rootCmd.AddCommand(newNewsCmd(cfg))
	rootCmd.AddCommand(newPortfolioCmd(cfg))
	rootCmd.AddCommand(newAlertsCmd(cfg))
	rootCmd.AddCommand(newAuthCmds(cfg)...)
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode")

	return rootCmd
}

// newVersionCmd creates the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stonk %s\n", Version)
			fmt.Println("AI-Powered Stock Research")
		},
	}
}

// newConfigCmd creates the config command.
func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Inspect and validate stonk configuration settings",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			showConfig(cfg)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateConfig(cfg)
		},
	})

	return configCmd
}

// showConfig displays the current configuration.
func showConfig(cfg *config.Config) {
	fmt.Println("📋 Current stonk Configuration:")
	fmt.Println("═══════════════════════════════════════")
	fmt.Printf("Data Directory:       %s\n", cfg.DataDir)
	fmt.Printf("Backend URL:          %s\n", cfg.APIBaseURL)
	fmt.Println()
	fmt.Printf("Request Timeout:      %s\n", cfg.RequestTimeout())
	fmt.Printf("Step Timeout:         %s\n", cfg.StepTimeout())
	fmt.Println()
	fmt.Printf("Analytics Enabled:    %t\n", cfg.AnalyticsEnabled)
	fmt.Printf("Debug Mode:           %t\n", cfg.Debug)
	fmt.Printf("Log Level:            %s\n", cfg.LogLevel)
	fmt.Println()

	fmt.Println("🔌 Auth Configuration:")
	fmt.Println("─────────────────────")
	if cfg.GoogleClientID != "" {
		fmt.Println("Google Sign-In:       ✅ Configured")
	} else {
		fmt.Println("Google Sign-In:       ❌ Not configured")
	}
}

// validateConfig validates the configuration and local state.
func validateConfig(cfg *config.Config) error {
	fmt.Println("🔍 Validating stonk Configuration...")
	fmt.Println("═══════════════════════════════════════")

	fmt.Print("⚙️  Checking configuration values... ")
	if err := cfg.Validate(); err != nil {
		fmt.Println("❌")
		return err
	}
	fmt.Println("✅")

	fmt.Print("📁 Checking directories... ")
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Println("❌")
		return fmt.Errorf("directory validation failed: %w", err)
	}
	fmt.Println("✅")

	fmt.Println()
	fmt.Println("✅ Configuration validation completed successfully!")
	fmt.Println()
	fmt.Println("💡 Tips:")
	fmt.Println("  • Set STONK_API_URL to point at your research backend")
	fmt.Println("  • Set STONK_ANALYTICS_ENABLED=false to opt out of usage analytics")
	fmt.Println("  • Use 'stonk research AAPL' to start your first analysis")

	return nil
}
