package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/isotopegame/isotope/internal/econ"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// particleStyle builds a foreground style from a catalog RGB color.
func particleStyle(rgb [3]uint8) lipgloss.Style {
	hex := fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true)
}

// View renders the game screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderParticles(),
		m.renderUpgrades(),
		m.renderAchievements(),
	}
	if s := m.renderNotices(); s != "" {
		sections = append(sections, s)
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the balance, total earnings and prestige status.
func (m Model) renderHeader() string {
	snap := m.snap

	perSecond := 0.0
	for _, p := range snap.Particles {
		if p.Unlocked && p.ProducesCash {
			perSecond += p.PerSecond
		}
	}

	line := fmt.Sprintf("Cash: $%s  (+%.1f/s)   Lifetime: $%s",
		snap.Cash.Format(), perSecond, snap.TotalEarnings.Format())

	prestige := fmt.Sprintf("Prestige %d  x%.2f production", snap.PrestigeLevel, snap.PrestigeBonus)
	if snap.CanPrestige {
		prestige += goodStyle.Render("   [p] prestige ready!")
	} else {
		prestige += dimStyle.Render(fmt.Sprintf("   next at $%s", snap.PrestigeCost.Format()))
	}

	return headerStyle.Width(m.contentWidth()).Render(line + "\n" + prestige)
}

// renderParticles lists the three particle tiers with buy hints.
func (m Model) renderParticles() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Particles"))

	hints := []string{"1", "2", "3"}
	for i, p := range m.snap.Particles {
		sb.WriteByte('\n')

		if !p.Unlocked {
			sb.WriteString(lockedStyle.Render(fmt.Sprintf(
				"  [%s] %s  (locked, unlocks at $%s lifetime)",
				hints[i], p.Name, p.UnlockAt.Format())))
			continue
		}

		name := particleStyle(p.Color).Render(p.Name)
		line := fmt.Sprintf("  [%s] %s  x%s  +%.1f/s  next: $%s",
			hints[i], name, p.Count.Format(), p.PerSecond, p.NextCost.Format())
		if !p.ProducesCash {
			line = fmt.Sprintf("  [%s] %s  x%s  +%.1f/s into pool  next: $%s",
				hints[i], name, p.Count.Format(), p.PerSecond, p.NextCost.Format())
		}
		if p.Affordable {
			line += goodStyle.Render("  $")
		}
		sb.WriteString(line)
		sb.WriteString(dimStyle.Render("\n      " + p.Description))
	}

	return panelStyle.Width(m.contentWidth()).Render(sb.String())
}

// renderUpgrades lists main upgrades and boosters with their hotkeys.
func (m Model) renderUpgrades() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Upgrades"))
	writeUpgradeLines(&sb, m.snap.Upgrades, []string{"z", "x", "c"})
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Boosters"))
	writeUpgradeLines(&sb, m.snap.Boosters, []string{"v", "b"})

	return panelStyle.Width(m.contentWidth()).Render(sb.String())
}

func writeUpgradeLines(sb *strings.Builder, views []econ.UpgradeView, hints []string) {
	for i, u := range views {
		if i >= len(hints) {
			break
		}
		sb.WriteByte('\n')

		if !u.Visible {
			sb.WriteString(lockedStyle.Render(fmt.Sprintf("  [%s] ???", hints[i])))
			continue
		}
		if u.Purchased {
			sb.WriteString(goodStyle.Render(fmt.Sprintf("  [%s] %s  (owned)", hints[i], u.Name)))
			continue
		}

		cost := fmt.Sprintf("$%s", u.Cost.Format())
		if u.Currency != econ.Currency {
			cost = fmt.Sprintf("%s %s", u.Cost.Format(), u.Currency)
		}
		line := fmt.Sprintf("  [%s] %s  %s", hints[i], u.Name, cost)
		if u.Affordable {
			line += goodStyle.Render("  $")
		}
		sb.WriteString(line)
		sb.WriteString(dimStyle.Render("  " + u.Description))
	}
}

// renderAchievements shows one line per achievement.
func (m Model) renderAchievements() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Achievements"))

	for _, a := range m.snap.Achievements {
		sb.WriteByte('\n')
		if a.Unlocked {
			sb.WriteString(goodStyle.Render(fmt.Sprintf("  * %s  (x%.1f)", a.Name, a.Reward)))
		} else {
			sb.WriteString(lockedStyle.Render(fmt.Sprintf("  - %s", a.Description)))
		}
	}

	return panelStyle.Width(m.contentWidth()).Render(sb.String())
}

// renderNotices shows recent transient messages.
func (m Model) renderNotices() string {
	if len(m.notices) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.notices))
	for _, n := range m.notices {
		lines = append(lines, noticeStyle.Render("> "+n.text))
	}
	return strings.Join(lines, "\n")
}

// contentWidth bounds panel width to the terminal.
func (m Model) contentWidth() int {
	const maxWidth = 88
	if m.width > 0 && m.width-2 < maxWidth {
		return m.width - 2
	}
	return maxWidth
}
