package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Styles bundles the lipgloss styles used for terminal output.
type Styles struct {
	// Banner frames the per-step header printed before each command.
	Banner lipgloss.Style

	// Title styles section titles in listings and summaries.
	Title lipgloss.Style

	// Success and Failure style result lines.
	Success lipgloss.Style
	Failure lipgloss.Style

	// Muted styles secondary detail such as durations and skip notes.
	Muted lipgloss.Style

	// TableHeader styles listing table header rows.
	TableHeader lipgloss.Style

	noColor bool
}

// NewStyles builds the style set. With noColor set, all styles render
// plain text.
func NewStyles(noColor bool) *Styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return &Styles{
			Banner:      plain,
			Title:       plain,
			Success:     plain,
			Failure:     plain,
			Muted:       plain,
			TableHeader: plain,
			noColor:     true,
		}
	}
	return &Styles{
		Banner: lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Failure:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
	}
}

// newTable builds a bordered listing table with styled headers.
func (s *Styles) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}
