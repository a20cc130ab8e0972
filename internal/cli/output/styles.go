package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used for reports.
type Styles struct {
	Label   lipgloss.Style
	OK      lipgloss.Style
	Error   lipgloss.Style
	Yes     lipgloss.Style
	No      lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles builds styles bound to lr so the color profile follows the
// renderer's output rather than the process stdout.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Label:   lr.NewStyle().Faint(true),
		OK:      lr.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Yes:     lr.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		No:      lr.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("3")),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
