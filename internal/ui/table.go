package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

// Box drawing characters
const (
	topLeft     = "╭"
	topRight    = "╮"
	bottomLeft  = "╰"
	bottomRight = "╯"
	horizontal  = "─"
	vertical    = "│"
	leftT       = "├"
	rightT      = "┤"
	topT        = "┬"
	bottomT     = "┴"
	cross       = "┼"
)

// Column widths
var columnWidths = []int{20, 26, 14, 22, 22}

type tableRow struct {
	cluster  string
	resource string
	status   pkgtypes.OutcomeStatus
	current  string
	target   string
}

// PrintRunTable prints every outcome of a run in a styled box table
func PrintRunTable(result *pkgtypes.RunResult) {
	rows := buildRows(result)
	if len(rows) == 0 {
		fmt.Println(MutedStyle.Render("  no eligible clusters with resources to evaluate"))
		printRunSummary(result, rows)
		return
	}

	headers := []string{"Cluster", "Resource", "Status", "Current", "Target"}

	var sb strings.Builder

	// Top border
	sb.WriteString(BorderStyle.Render(topLeft))
	for i, w := range columnWidths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(horizontal, w+2)))
		if i < len(columnWidths)-1 {
			sb.WriteString(BorderStyle.Render(topT))
		}
	}
	sb.WriteString(BorderStyle.Render(topRight))
	sb.WriteString("\n")

	// Header row
	sb.WriteString(BorderStyle.Render(vertical))
	for i, h := range headers {
		cell := " " + padRight(h, columnWidths[i]) + " "
		sb.WriteString(HeaderStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(vertical))
	}
	sb.WriteString("\n")

	// Header separator
	sb.WriteString(BorderStyle.Render(leftT))
	for i, w := range columnWidths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(horizontal, w+2)))
		if i < len(columnWidths)-1 {
			sb.WriteString(BorderStyle.Render(cross))
		}
	}
	sb.WriteString(BorderStyle.Render(rightT))
	sb.WriteString("\n")

	// Data rows
	for _, row := range rows {
		sb.WriteString(BorderStyle.Render(vertical))

		cell := " " + padRight(row.cluster, columnWidths[0]) + " "
		sb.WriteString(ClusterStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(vertical))

		cell = " " + padRight(row.resource, columnWidths[1]) + " "
		sb.WriteString(ResourceStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(vertical))

		sb.WriteString(formatStatus(row.status, columnWidths[2]))
		sb.WriteString(BorderStyle.Render(vertical))

		cell = " " + padRight(row.current, columnWidths[3]) + " "
		sb.WriteString(VersionStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(vertical))

		cell = " " + padRight(row.target, columnWidths[4]) + " "
		sb.WriteString(VersionStyle.Render(cell))
		sb.WriteString(BorderStyle.Render(vertical))

		sb.WriteString("\n")
	}

	// Bottom border
	sb.WriteString(BorderStyle.Render(bottomLeft))
	for i, w := range columnWidths {
		sb.WriteString(BorderStyle.Render(strings.Repeat(horizontal, w+2)))
		if i < len(columnWidths)-1 {
			sb.WriteString(BorderStyle.Render(bottomT))
		}
	}
	sb.WriteString(BorderStyle.Render(bottomRight))
	sb.WriteString("\n")

	fmt.Print(sb.String())

	printRunSummary(result, rows)
}

func buildRows(result *pkgtypes.RunResult) []tableRow {
	var rows []tableRow
	for _, summary := range result.Summaries {
		if summary.ControlPlane != nil {
			rows = append(rows, tableRow{
				cluster:  summary.Cluster.Name,
				resource: "control plane",
				status:   summary.ControlPlane.Status,
				current:  summary.ControlPlane.CurrentVersion,
				target:   summary.ControlPlane.TargetVersion,
			})
		}
		for _, a := range summary.Addons {
			rows = append(rows, tableRow{
				cluster:  summary.Cluster.Name,
				resource: "addon/" + a.Addon.Name,
				status:   a.Outcome.Status,
				current:  a.Outcome.CurrentVersion,
				target:   a.Outcome.TargetVersion,
			})
		}
		for _, n := range summary.NodeGroups {
			target := n.Outcome.TargetRelease
			if target == "" {
				target = n.Outcome.TargetVersion
			}
			current := n.Outcome.CurrentRelease
			if current == "" {
				current = n.Outcome.CurrentVersion
			}
			rows = append(rows, tableRow{
				cluster:  summary.Cluster.Name,
				resource: "nodegroup/" + n.NodeGroup.Name,
				status:   n.Outcome.Status,
				current:  current,
				target:   target,
			})
		}
	}
	return rows
}

func formatStatus(status pkgtypes.OutcomeStatus, width int) string {
	var indicator string
	var style lipgloss.Style

	switch status {
	case pkgtypes.StatusUpToDate:
		indicator = "●"
		style = CurrentStyle
	case pkgtypes.StatusInitiated:
		indicator = "◐"
		style = UpdatingStyle
	default:
		indicator = "○"
		style = BlockedStyle
	}

	text := fmt.Sprintf(" %s %s ", indicator, padRight(string(status), width-3))
	return style.Render(text)
}

func printRunSummary(result *pkgtypes.RunResult, rows []tableRow) {
	counts := make(map[pkgtypes.OutcomeStatus]int)
	for _, row := range rows {
		counts[row.status]++
	}

	var parts []string
	if c := counts[pkgtypes.StatusUpToDate]; c > 0 {
		parts = append(parts, CurrentStyle.Render(fmt.Sprintf("%d up-to-date", c)))
	}
	if c := counts[pkgtypes.StatusInitiated]; c > 0 {
		parts = append(parts, UpdatingStyle.Render(fmt.Sprintf("%d updating", c)))
	}
	if c := counts[pkgtypes.StatusBlocked] + counts[pkgtypes.StatusFailed]; c > 0 {
		parts = append(parts, BlockedStyle.Render(fmt.Sprintf("%d blocked/failed", c)))
	}

	summary := fmt.Sprintf("  %d clusters seen, %d eligible, %d resources", result.ClustersSeen, result.ClustersEligible, len(rows))
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}
	fmt.Println(summary)

	if result.BudgetExhausted {
		fmt.Println(UpdatingStyle.Render("  run budget exhausted; remaining resources are picked up next run"))
	}
	if result.NotificationsSent > 0 {
		fmt.Println(HintStyle.Render(fmt.Sprintf("  %d notifications sent", result.NotificationsSent)))
	}
}
