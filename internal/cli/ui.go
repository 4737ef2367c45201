package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stonklab/stonk/internal/api"
	"github.com/stonklab/stonk/internal/mdtext"
	"github.com/stonklab/stonk/internal/research"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 2).
			Width(80)

	resultStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(1, 2).
			Width(80)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	boldStyle = lipgloss.NewStyle().Bold(true)

	staleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F59E0B")).
			Padding(0, 2).
			Width(80)

	disclaimerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")).
			Italic(true).
			Width(80)

	citationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)
)

const adviceDisclaimer = "This is educational analysis, not financial advice. Always do your own research before investing."

// DisplayWelcomeBanner shows the welcome banner.
func DisplayWelcomeBanner() {
	banner := `
 ███████╗████████╗ ██████╗ ███╗   ██╗██╗  ██╗
 ██╔════╝╚══██╔══╝██╔═══██╗████╗  ██║██║ ██╔╝
 ███████╗   ██║   ██║   ██║██╔██╗ ██║█████╔╝
 ╚════██║   ██║   ██║   ██║██║╚██╗██║██╔═██╗
 ███████║   ██║   ╚██████╔╝██║ ╚████║██║  ██╗
 ╚══════╝   ╚═╝    ╚═════╝ ╚═╝  ╚═══╝╚═╝  ╚═╝

        📈 AI-Powered Stock Research 📈
`

	welcomeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true).
		Align(lipgloss.Center).
		Width(80)

	fmt.Print(welcomeStyle.Render(banner))
	fmt.Println()
}

// DisplayResearchHeader shows the active ticker and settings.
func DisplayResearchHeader(p research.Params) {
	header := fmt.Sprintf("📊 Ticker: %s | 📅 Horizon: %s | ⚖️  Risk: %s",
		p.Ticker, p.Horizon, p.RiskLevel)
	fmt.Println(headerStyle.Render(header))
}

// DisplayStepSidebar shows the step list with per-step progress.
func DisplayStepSidebar(flow *research.Flow) {
	_, active := flow.Current()
	var content strings.Builder

	content.WriteString("🧭 Research Steps\n\n")
	for i, step := range research.Steps {
		marker := "  "
		style := pendingStyle
		switch {
		case flow.State(step.ID) == research.StateLoading:
			marker = "🔄"
			style = activeStyle
		case flow.Completed(step.ID):
			marker = "✓ "
			style = completedStyle
		}
		line := fmt.Sprintf("%s %s %s", marker, step.Icon, step.Name)
		if step.ID == active.ID {
			line = "▶ " + line
		} else {
			line = "  " + line
		}
		content.WriteString(style.Render(line))
		if i < len(research.Steps)-1 {
			content.WriteString("\n")
		}
	}

	fmt.Println(content.String())
}

// DisplayStaleBanner warns that a cached result no longer matches the
// current settings.
func DisplayStaleBanner(analyzed, current research.Params) {
	var changes []string
	if analyzed.Ticker != current.Ticker {
		changes = append(changes, fmt.Sprintf("ticker %s → %s", analyzed.Ticker, current.Ticker))
	}
	if analyzed.Horizon != current.Horizon {
		changes = append(changes, fmt.Sprintf("horizon %s → %s", analyzed.Horizon, current.Horizon))
	}
	if analyzed.RiskLevel != current.RiskLevel {
		changes = append(changes, fmt.Sprintf("risk %s → %s", analyzed.RiskLevel, current.RiskLevel))
	}
	banner := fmt.Sprintf("⚠️  Analyzed with different settings (%s). Results may be out of date.",
		strings.Join(changes, ", "))
	fmt.Println(staleStyle.Render(banner))
}

// DisplayStepResult renders one research step's narrative and citations.
func DisplayStepResult(step research.Step, result *api.StepResult) {
	var content strings.Builder

	content.WriteString(sectionStyle.Render(fmt.Sprintf("%s %s", step.Icon, step.Name)))
	content.WriteString("\n\n")
	content.WriteString(renderBlocks(result.Response))

	if len(result.Citations) > 0 {
		content.WriteString("\n\n")
		content.WriteString(citationStyle.Render("Sources:"))
		for i, c := range result.Citations {
			content.WriteString("\n")
			content.WriteString(citationStyle.Render(fmt.Sprintf("  [%d] %s", i+1, c)))
		}
	}

	fmt.Println(resultStyle.Render(content.String()))

	if step.ID == "investment_advice" {
		fmt.Println(disclaimerStyle.Render("⚠️  " + adviceDisclaimer))
	}
}

// renderBlocks converts markdown-ish narrative text into styled terminal
// output.
func renderBlocks(text string) string {
	var out strings.Builder
	for i, block := range mdtext.Parse(text) {
		if i > 0 {
			out.WriteString("\n\n")
		}
		switch block.Kind {
		case mdtext.BlockHeader:
			out.WriteString(sectionStyle.Render(block.Text))
		case mdtext.BlockList:
			for j, item := range block.Items {
				if j > 0 {
					out.WriteString("\n")
				}
				if block.Style == mdtext.ListNumbered {
					out.WriteString(fmt.Sprintf("%d. ", j+1))
					if item.Term != "" {
						out.WriteString(boldStyle.Render(item.Term))
						if len(item.Spans) > 0 {
							out.WriteString(": ")
						}
					}
				} else {
					out.WriteString("• ")
				}
				out.WriteString(renderSpans(item.Spans))
			}
		case mdtext.BlockParagraph:
			out.WriteString(renderSpans(block.Spans))
		}
	}
	return out.String()
}

func renderSpans(spans []mdtext.Span) string {
	var out strings.Builder
	for _, span := range spans {
		if span.Bold {
			out.WriteString(boldStyle.Render(span.Text))
		} else {
			out.WriteString(span.Text)
		}
	}
	return out.String()
}

// DisplayError shows an error message.
func DisplayError(err error) {
	fmt.Println(errorStyle.Render(fmt.Sprintf("❌ Error: %s", err.Error())))
}

// DisplayInfo shows an info message.
func DisplayInfo(message string) {
	fmt.Println(infoStyle.Render(fmt.Sprintf("ℹ️  %s", message)))
}

// DisplaySuccess shows a success message.
func DisplaySuccess(message string) {
	fmt.Println(successStyle.Render(fmt.Sprintf("✅ %s", message)))
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
