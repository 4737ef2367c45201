package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stonklab/stonk/config"
)

// newChatCmd creates the chat command.
func newChatCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [TICKER]",
		Short: "Ask free-form questions about a stock",
		Long: `Start a question-and-answer session about a ticker.
Example: stonk chat NVDA`,
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
			} else {
				ticker, err = PromptForTicker()
				if err != nil {
					return err
				}
			}

			return runChatLoop(app, ticker)
		},
	}
}

// runChatLoop reads questions until the user exits.
func runChatLoop(app *App, ticker string) error {
	app.Tracker.PageView("chat")
	fmt.Printf("💬 Chatting about %s. Type 'exit' to quit.\n\n", ticker)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("❓ ")
		question, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		question = strings.TrimSpace(question)

		if strings.EqualFold(question, "exit") || strings.EqualFold(question, "quit") {
			fmt.Println("👋 Happy investing!")
			return nil
		}
		if question == "" {
			continue
		}

		fmt.Println("🤔 Thinking...")
		reply, err := app.Chat.Send(context.Background(), ticker, question)
		if err != nil {
			// The session already appended the fallback turn; show it.
			fmt.Println(resultStyle.Render(reply))
			continue
		}
		fmt.Println(resultStyle.Render(renderBlocks(reply)))
		fmt.Println()
	}
}
