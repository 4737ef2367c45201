package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stonklab/stonk/config"
	"github.com/stonklab/stonk/internal/api"
	"github.com/stonklab/stonk/internal/scrape"
	"github.com/stonklab/stonk/internal/watchlist"
)

// newWatchlistCmd creates the watchlist command.
func newWatchlistCmd(cfg *config.Config) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:     "watchlist",
		Aliases: []string{"watch"},
		Short:   "Manage your tracked tickers",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()
			displayWatchlist(app.Watchlist)
			return nil
		},
	}

	watchCmd.AddCommand(&cobra.Command{
		Use:   "add TICKER...",
		Short: "Add tickers to the watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			for _, arg := range args {
				ticker := strings.ToUpper(strings.TrimSpace(arg))
				if err := validateTicker(ticker); err != nil {
					DisplayError(fmt.Errorf("%s: %w", arg, err))
					continue
				}
				if err := app.Watchlist.Add(ticker); err != nil {
					if errors.Is(err, watchlist.ErrDuplicate) {
						DisplayInfo(fmt.Sprintf("%s is already on your watchlist.", ticker))
						continue
					}
					return err
				}
				DisplaySuccess(fmt.Sprintf("Added %s to your watchlist.", ticker))
				app.Tracker.FeatureUse("watchlist_add", map[string]interface{}{"ticker": ticker})
			}
			return nil
		},
	})

	watchCmd.AddCommand(&cobra.Command{
		Use:     "remove TICKER...",
		Aliases: []string{"rm"},
		Short:   "Remove tickers from the watchlist",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			for _, arg := range args {
				if err := app.Watchlist.Remove(arg); err != nil {
					return err
				}
				DisplaySuccess(fmt.Sprintf("Removed %s.", strings.ToUpper(strings.TrimSpace(arg))))
			}
			return nil
		},
	})

	return watchCmd
}

func displayWatchlist(list *watchlist.List) {
	entries := list.Entries()
	if len(entries) == 0 {
		DisplayInfo("Your watchlist is empty. Use 'stonk watchlist add TICKER' to start tracking.")
		return
	}

	fmt.Println(sectionStyle.Render("⭐ Watchlist"))
	for _, e := range entries {
		line := fmt.Sprintf("  %-8s added %s", e.Ticker, e.AddedAt.Format("2006-01-02"))
		if e.LastAnalyzed != nil {
			line += fmt.Sprintf("  (last analyzed %s)", e.LastAnalyzed.Format("2006-01-02"))
		}
		fmt.Println(line)
	}
}

// newNewsCmd creates the news command.
func newNewsCmd(cfg *config.Config) *cobra.Command {
	newsCmd := &cobra.Command{
		Use:   "news",
		Short: "Show news for your watchlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			resolve, _ := cmd.Flags().GetBool("resolve-titles")

			news, err := app.Client.WatchlistNews(context.Background(), limit)
			if err != nil {
				return err
			}
			app.Tracker.PageView("news")

			displayNews(news, resolve)
			return nil
		},
	}

	newsCmd.Flags().Int("limit", 3, "Articles per ticker")
	newsCmd.Flags().Bool("resolve-titles", false, "Fetch page titles for articles without one")

	newsCmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Ask the backend to refresh watchlist news",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Client.RefreshNews(context.Background()); err != nil {
				return err
			}
			DisplaySuccess("News refresh started.")
			return nil
		},
	})

	return newsCmd
}

func displayNews(news map[string][]api.NewsItem, resolve bool) {
	if len(news) == 0 {
		DisplayInfo("No news for your watchlist yet. Try 'stonk news refresh'.")
		return
	}

	var resolver *scrape.TitleResolver
	if resolve {
		resolver = scrape.NewTitleResolver()
	}

	tickers := make([]string, 0, len(news))
	for ticker := range news {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		fmt.Println(sectionStyle.Render("📰 " + ticker))
		for _, item := range news[ticker] {
			title := item.Title
			if title == "" && resolver != nil {
				title = resolver.Resolve(context.Background(), item.URL)
			}
			if title == "" {
				title = item.URL
			}
			fmt.Printf("  • %s\n", title)
			if item.Source != "" || item.TimePublished != "" {
				fmt.Println(pendingStyle.Render(fmt.Sprintf("    %s %s", item.Source, item.TimePublished)))
			}
			if item.AISummary != "" {
				fmt.Printf("    %s\n", truncateString(item.AISummary, 160))
			}
			if item.AISentiment != "" {
				fmt.Println(pendingStyle.Render("    Sentiment: " + item.AISentiment))
			}
		}
		fmt.Println()
	}
}
