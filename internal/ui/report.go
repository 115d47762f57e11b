package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/PowerPress/npk/internal/preflight"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#eab308"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// RenderReport formats a completed snapshot for the terminal.
func RenderReport(snapshot *preflight.Snapshot) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Preflight passed"))
	if snapshot.Incomplete {
		b.WriteString(" " + warnStyle.Render("(incomplete survey)"))
	}
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Capability"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  regions discovered: %d, with usable spot quota: %d\n",
		len(snapshot.ProviderRegions), len(snapshot.Quotas))
	fmt.Fprintf(&b, "  maximum spot quota: %s\n", okStyle.Render(fmt.Sprintf("%g", snapshot.MaxQuota)))
	if snapshot.SpotRoleExists {
		fmt.Fprintf(&b, "  spot service role:  %s\n", okStyle.Render("present"))
	} else {
		fmt.Fprintf(&b, "  spot service role:  %s\n", dimStyle.Render("absent (will be created)"))
	}
	if snapshot.DNSBaseName != "" {
		fmt.Fprintf(&b, "  dns base name:      %s\n", snapshot.DNSBaseName)
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Usable regions"))
	b.WriteString("\n")

	regions := make([]string, 0, len(snapshot.Quotas))
	for region := range snapshot.Quotas {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	for _, region := range regions {
		best := 0.0
		for _, value := range snapshot.Quotas[region] {
			if value > best {
				best = value
			}
		}
		fmt.Fprintf(&b, "  %-16s quota %-6g zones %s\n",
			region, best, strings.Join(snapshot.Regions[region], ", "))
	}

	if len(snapshot.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Warnings"))
		b.WriteString("\n")
		for _, warning := range snapshot.Warnings {
			fmt.Fprintf(&b, "  %s %s\n", warnStyle.Render("!"), warning)
		}
	}

	return b.String()
}
