package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/screenmock/internal/client/models"
	"github.com/dmitrijs2005/screenmock/internal/client/services"
)

const msgCreditsFailed = "Failed to load credits. Please try again."

type theme struct {
	Header lipgloss.Style
	Panel  lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style
	Alert  lipgloss.Style
	Danger lipgloss.Style
}

func defaultTheme() theme {
	accent := lipgloss.Color("#00FFFF")
	secondary := lipgloss.Color("#7D7D7D")
	alert := lipgloss.Color("#FFBF00")
	danger := lipgloss.Color("#FF0055")

	return theme{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(0, 1),
		Muted: lipgloss.NewStyle().
			Foreground(secondary),
		Accent: lipgloss.NewStyle().
			Foreground(accent),
		Alert: lipgloss.NewStyle().
			Foreground(alert),
		Danger: lipgloss.NewStyle().
			Foreground(danger),
	}
}

func (th theme) creditCard(title string, remaining, total int) string {
	count := th.Accent.Render(fmt.Sprintf("%d", remaining))
	if remaining == 0 {
		count = th.Alert.Render("0")
	}
	body := th.Header.Render(title) + "\n" +
		count + th.Muted.Render(fmt.Sprintf(" / %d remaining", total)) + "\n" +
		th.Muted.Render(fmt.Sprintf("%d used", total-remaining))
	return th.Panel.Render(body)
}

// renderCredits draws the profile view of the ledger.
func (th theme) renderCredits(st services.CreditState) string {
	if st.Credits == nil {
		switch {
		case st.Loading:
			return th.Muted.Render("Loading credits...")
		case st.Err != "":
			return th.Danger.Render(msgCreditsFailed)
		default:
			return th.Muted.Render("No credit information yet.")
		}
	}

	c := st.Credits
	out := lipgloss.JoinHorizontal(lipgloss.Top,
		th.creditCard("Screens", c.RemainingScreenCredits, c.ScreenCredits),
		" ",
		th.creditCard("Revisions", c.RemainingRevisionCredits, c.RevisionCredits),
	)
	if !c.LastUpdated.IsZero() {
		out += "\n" + th.Muted.Render("updated "+c.LastUpdated.Local().Format("15:04:05"))
	}
	if st.Err != "" {
		out += "\n" + th.Danger.Render(msgCreditsFailed)
	}
	return out
}

func (th theme) renderMockups(list []models.MockupSummary) string {
	if len(list) == 0 {
		return th.Muted.Render("No mockups yet.")
	}
	var b strings.Builder
	b.WriteString(th.Header.Render(fmt.Sprintf("%d mockups", len(list))))
	for _, m := range list {
		title := m.ScreenTitle
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&b, "\n%s  %s  %s", th.Accent.Render(m.ID), title, th.Muted.Render(m.DeviceInfo.Model))
	}
	return b.String()
}

func (th theme) renderHistory(records []models.HistoryRecord) string {
	if len(records) == 0 {
		return th.Muted.Render("History is empty.")
	}
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %-9s %s  %s",
			th.Muted.Render(r.CreatedAt.Local().Format("2006-01-02 15:04")),
			r.Origin,
			th.Accent.Render(r.ScreenID),
			th.Muted.Render(r.Digest[:min(12, len(r.Digest))]))
	}
	return b.String()
}
