package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/stonklab/stonk/internal/research"
)

// runInteractiveResearch drives the guided research session: one step at a
// time, with navigation, follow-up chat, and settings changes in between.
func runInteractiveResearch(app *App, ticker string) error {
	DisplayWelcomeBanner()

	params, err := PromptResearchParams(ticker)
	if err != nil {
		return err
	}
	app.Tracker.PageView("research")

	// Follow-up questions about the researched ticker surface failures as
	// a distinct transcript turn.
	app.Chat.ErrorRole = true

	reader := bufio.NewReader(os.Stdin)

	// Run the first step right away.
	runStep(app, params)

	for {
		fmt.Println()
		DisplayResearchHeader(params)
		DisplayStepSidebar(app.Flow)
		fmt.Println()
		fmt.Print("➡️  [n]ext, [p]revious, [1-7] jump, [r]e-run, [a]sk, [s]ettings, [t]icker, [q]uit: ")

		input, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		input = strings.TrimSpace(strings.ToLower(input))

		switch {
		case input == "q" || input == "quit" || input == "exit":
			fmt.Println("👋 Happy investing!")
			return nil

		case input == "n" || input == "next":
			needsRun, err := app.Flow.Next()
			if err != nil {
				DisplayError(err)
				continue
			}
			showOrRun(app, params, needsRun)

		case input == "p" || input == "prev" || input == "previous":
			needsRun, err := app.Flow.Previous()
			if err != nil {
				DisplayError(err)
				continue
			}
			showOrRun(app, params, needsRun)

		case input == "r" || input == "rerun":
			runStep(app, params)

		case input == "a" || input == "ask":
			askQuestion(app, reader, params.Ticker)

		case input == "s" || input == "settings":
			horizon, err := PromptForHorizon(params.Horizon)
			if err != nil {
				continue
			}
			risk, err := PromptForRiskLevel(params.RiskLevel)
			if err != nil {
				continue
			}
			if horizon != params.Horizon {
				app.Tracker.SettingsChange("horizon", horizon)
			}
			if risk != params.RiskLevel {
				app.Tracker.SettingsChange("risk_level", risk)
			}
			params.Horizon = horizon
			params.RiskLevel = risk
			showCurrent(app, params)

		case input == "t" || input == "ticker":
			next, err := PromptForTicker()
			if err != nil {
				continue
			}
			if next != params.Ticker {
				params.Ticker = next
				app.Chat.Clear()
			}
			showCurrent(app, params)

		default:
			if idx, err := strconv.Atoi(input); err == nil {
				needsRun, err := app.Flow.Select(idx - 1)
				if err != nil {
					DisplayError(err)
					continue
				}
				showOrRun(app, params, needsRun)
				continue
			}
			fmt.Println("❓ Unrecognized command. Please try again.")
		}
	}
}

// showOrRun runs the now-active step if it has no result yet, otherwise
// shows the cached result with a staleness check.
func showOrRun(app *App, params research.Params, needsRun bool) {
	if needsRun {
		runStep(app, params)
		return
	}
	showCurrent(app, params)
}

// showCurrent renders the active step's cached result, flagging and
// optionally refreshing a stale one.
func showCurrent(app *App, params research.Params) {
	_, step := app.Flow.Current()
	result, ok := app.Flow.Result(step.ID)
	if !ok {
		DisplayInfo(fmt.Sprintf("%s has not been analyzed yet. Use [r] to run it.", step.Name))
		return
	}

	if analyzed, stale := app.Flow.Stale(step.ID, params); stale {
		DisplayStaleBanner(analyzed, params)
		DisplayStepResult(step, result)
		rerun, err := PromptForReanalyze(step.Name)
		if err == nil && rerun {
			runStep(app, params)
		}
		return
	}

	DisplayStepResult(step, result)
}

// runStep executes the active step and renders the outcome.
func runStep(app *App, params research.Params) {
	_, step := app.Flow.Current()
	fmt.Printf("\n🔄 Analyzing %s for %s...\n", step.Name, params.Ticker)

	start := time.Now()
	result, err := app.Flow.Run(context.Background(), step.ID, params)
	if err != nil {
		if errors.Is(err, research.ErrSuperseded) {
			return
		}
		DisplayError(err)
		return
	}

	fmt.Printf("✅ Done in %s\n\n", time.Since(start).Round(time.Second))
	DisplayStepResult(step, result)

	if err := app.Watchlist.MarkAnalyzed(params.Ticker, time.Now()); err != nil {
		DisplayError(err)
	}
}

// askQuestion runs one follow-up chat exchange about the current ticker.
func askQuestion(app *App, reader *bufio.Reader, ticker string) {
	fmt.Print("💬 Your question (or press Enter to cancel): ")
	question, err := reader.ReadString('\n')
	if err != nil {
		return
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return
	}

	fmt.Println("🤔 Thinking...")
	reply, err := app.Chat.Send(context.Background(), ticker, question)
	if err != nil {
		DisplayError(err)
		if reply == "" {
			return
		}
	}
	fmt.Println(resultStyle.Render(renderBlocks(reply)))
}
