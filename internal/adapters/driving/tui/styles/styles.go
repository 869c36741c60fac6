// Package styles holds the lipgloss styles used across TUI views.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/smartmeet-labs/smartmeet-cli/internal/core/domain"
)

// Styles is the shared style set for the task pane TUI.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	Card         lipgloss.Style
	SelectedCard lipgloss.Style

	TierHigh   lipgloss.Style
	TierMedium lipgloss.Style
	TierLow    lipgloss.Style
}

// DefaultStyles returns the default style set.
func DefaultStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),
		SelectedCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),

		TierHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		TierMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		TierLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// TierStyle returns the style for a confidence tier.
func (s *Styles) TierStyle(tier domain.ConfidenceTier) lipgloss.Style {
	switch tier {
	case domain.TierHigh:
		return s.TierHigh
	case domain.TierMedium:
		return s.TierMedium
	default:
		return s.TierLow
	}
}
