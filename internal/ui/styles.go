package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color palette
const (
	ColorBorder   = "240"
	ColorHeader   = "252"
	ColorCluster  = "81"
	ColorResource = "252"
	ColorVersion  = "245"
	ColorCurrent  = "82"
	ColorUpdating = "214"
	ColorBlocked  = "203"
	ColorMuted    = "240"
	ColorHint     = "245"
)

// Shared styles
var (
	BorderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader))
	ClusterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCluster))
	ResourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorResource))
	VersionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorVersion))
	CurrentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorCurrent))
	UpdatingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorUpdating))
	BlockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlocked))
	MutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	HintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHint))
)

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}
