package engine

import (
	"fmt"
	"strings"

	pkgtypes "github.com/vietdv277/nimbus/pkg/types"
)

const sectionRule = 60

// RenderNotification turns one cluster summary into the subject and
// body of its notification. Section order is fixed: counts, then
// resources updating right now, then blocked/failed with remediation,
// then up-to-date last, so actionable content always comes first.
func RenderNotification(s pkgtypes.ClusterSummary, runType pkgtypes.RunType) (subject, body string) {
	entries := buildEntries(s)

	var upToDate, updating, attention int
	for _, entry := range entries {
		switch {
		case entry.out.Status == pkgtypes.StatusUpToDate:
			upToDate++
		case entry.out.Status == pkgtypes.StatusInitiated:
			updating++
		default:
			attention++
		}
	}

	kind := "EKS Upgrade Summary"
	if runType == pkgtypes.RunNodeGroups {
		kind = "EKS Node Group Summary"
	}

	var overall string
	switch {
	case attention > 0:
		overall = fmt.Sprintf("%d Blocked/Failed", attention)
	case updating > 0:
		overall = fmt.Sprintf("%d Updating", updating)
	default:
		overall = "All Up-to-Date"
	}
	subject = fmt.Sprintf("%s - %s - %s", kind, s.Cluster.Name, overall)

	lines := []string{
		fmt.Sprintf("Cluster: %s", s.Cluster.Name),
		fmt.Sprintf("Kubernetes Version: %s", s.Cluster.Version),
		fmt.Sprintf("Total Resources: %d", len(entries)),
		fmt.Sprintf("Up-to-Date: %d", upToDate),
		fmt.Sprintf("Updating: %d", updating),
		fmt.Sprintf("Blocked/Failed: %d", attention),
		"",
		strings.Repeat("=", sectionRule),
	}

	if updating > 0 {
		lines = append(lines, "", "CURRENTLY UPDATING:", strings.Repeat("-", sectionRule))
		for _, entry := range entries {
			if entry.out.Status != pkgtypes.StatusInitiated {
				continue
			}
			lines = append(lines, entry.detailLines()...)
			lines = append(lines, fmt.Sprintf("  Update ID: %s", entry.out.UpdateID), "")
		}
	}

	if attention > 0 {
		lines = append(lines, "", "BLOCKED / FAILED:", strings.Repeat("-", sectionRule))
		for _, entry := range entries {
			if !entry.out.NeedsAttention() {
				continue
			}
			lines = append(lines, entry.detailLines()...)
			switch entry.out.Status {
			case pkgtypes.StatusBlocked:
				lines = append(lines, fmt.Sprintf("  Reason: %s", entry.out.Reason))
				if entry.out.Remediation != "" {
					lines = append(lines,
						"  ACTION REQUIRED: to proceed manually, run:",
						fmt.Sprintf("  %s", entry.out.Remediation))
				}
			default:
				lines = append(lines, fmt.Sprintf("  Error (%s): %s", entry.out.FailureKind, entry.out.Error))
			}
			lines = append(lines, "")
		}
	}

	if upToDate > 0 {
		lines = append(lines, "", "UP-TO-DATE:", strings.Repeat("-", sectionRule))
		for _, entry := range entries {
			if entry.out.Status != pkgtypes.StatusUpToDate {
				continue
			}
			lines = append(lines, "  "+entry.compact)
		}
		lines = append(lines, "")
	}

	return subject, strings.Join(lines, "\n")
}

// reportEntry is one resource's row in the notification, with enough
// presentation detail to render each section
type reportEntry struct {
	label    string
	auth     string // addons only
	capacity []pkgtypes.AutoScalingGroup
	compact  string
	out      pkgtypes.Outcome
}

func buildEntries(s pkgtypes.ClusterSummary) []reportEntry {
	var entries []reportEntry

	if s.ControlPlane != nil {
		entries = append(entries, reportEntry{
			label:   "Control Plane",
			compact: fmt.Sprintf("Control Plane (%s)", s.ControlPlane.CurrentVersion),
			out:     *s.ControlPlane,
		})
	}

	for _, a := range s.Addons {
		entries = append(entries, reportEntry{
			label:   fmt.Sprintf("Addon: %s", a.Addon.Name),
			auth:    a.Addon.DisplayAuth(),
			compact: fmt.Sprintf("%s (%s) - %s", a.Addon.Name, a.Outcome.CurrentVersion, a.Addon.DisplayAuth()),
			out:     a.Outcome,
		})
	}

	for _, n := range s.NodeGroups {
		entries = append(entries, reportEntry{
			label:    fmt.Sprintf("Node Group: %s", n.NodeGroup.Name),
			capacity: n.Capacity,
			compact:  fmt.Sprintf("%s (%s, AMI: %s)", n.NodeGroup.Name, n.Outcome.CurrentVersion, n.NodeGroup.ReleaseVersion),
			out:      n.Outcome,
		})
	}

	return entries
}

// detailLines renders the shared header of an updating or
// blocked/failed entry
func (r reportEntry) detailLines() []string {
	lines := []string{
		fmt.Sprintf("  %s", r.label),
		fmt.Sprintf("  Version: %s -> %s", r.out.CurrentVersion, r.out.TargetVersion),
	}

	if r.out.CurrentRelease != "" || r.out.TargetRelease != "" {
		target := r.out.TargetRelease
		if target == "" {
			target = "Latest"
		}
		lines = append(lines, fmt.Sprintf("  AMI Release: %s -> %s", r.out.CurrentRelease, target))
	}

	if r.auth != "" {
		lines = append(lines, fmt.Sprintf("  Authentication: %s", r.auth))
	}

	for _, asg := range r.capacity {
		lines = append(lines, fmt.Sprintf("  Capacity: %s (%d desired, %d healthy, %d unhealthy)",
			asg.Name, asg.DesiredCapacity, asg.HealthyCount, asg.UnhealthyCount))
	}

	return lines
}
