package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/missive/internal/rules"
	"github.com/zjrosen/missive/internal/ui/styles"
)

// zoneIDPrefix namespaces the sidebar's clickable region lines.
const zoneIDPrefix = "playground_region_"

func regionZoneID(region rules.Region) string {
	return zoneIDPrefix + region.String()
}

// renderSidebar renders the region list with per-region rule counts.
func (m Model) renderSidebar() string {
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(styles.SelectionIndicatorColor)
	normalStyle := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor)
	countStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	var sb strings.Builder
	for i, region := range m.regions {
		name := region.String()

		count := ""
		if n := m.regionRuleCount(region); n > 0 {
			count = countStyle.Render(fmt.Sprintf(" %d", n))
		}

		var line string
		if i == m.selected {
			// Selected: show selection indicator
			indicator := styles.SelectionIndicatorStyle.Render("●")
			line = " " + indicator + " " + selectedStyle.Render(name) + count
		} else {
			line = "   " + normalStyle.Render(name) + count
		}

		if m.mouseZones {
			line = zone.Mark(regionZoneID(region), line)
		}

		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// regionRuleCount returns how many rules the region currently holds.
func (m Model) regionRuleCount(region rules.Region) int {
	rs, err := m.engine.RuleSet(region)
	if err != nil {
		return 0
	}
	return rs.Len()
}
