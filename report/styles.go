package report

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	ColorRule    = lipgloss.Color("#06B6D4") // Cyan
	ColorSuccess = lipgloss.Color("#10B981") // Emerald
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
)

// Styles used for text output, the zero value renders plain text
type Styles struct {
	Header   lipgloss.Style
	Rule     lipgloss.Style
	Token    lipgloss.Style
	Syntax   lipgloss.Style
	Semantic lipgloss.Style
	Note     lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style
}

func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:   plain,
		Rule:     plain,
		Token:    plain,
		Syntax:   plain,
		Semantic: plain,
		Note:     plain,
		Success:  plain,
		Failure:  plain,
	}
}

func ColorStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true),
		Rule:     lipgloss.NewStyle().Foreground(ColorRule),
		Token:    lipgloss.NewStyle().Foreground(ColorMuted),
		Syntax:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Semantic: lipgloss.NewStyle().Foreground(ColorWarning).Bold(true),
		Note:     lipgloss.NewStyle().Foreground(ColorMuted).Italic(true),
		Success:  lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true),
		Failure:  lipgloss.NewStyle().Foreground(ColorError),
	}
}
