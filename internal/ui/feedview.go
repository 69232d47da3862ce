package ui

import "strings"

// feedLines is how many activity entries the trailing strip shows.
const feedLines = 4

// renderFeed renders the activity strip: the most recent submissions and
// their outcomes, newest last.
func (m Model) renderFeed() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	entries := m.feed.Tail(feedLines)
	if len(entries) == 0 {
		return bg.FillLine(bg.Spaces(2)+bg.Render("no activity yet", styles.FaintText), m.width)
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		style := styles.MutedText
		if e.Err {
			style = styles.DangerText
		}
		line := bg.Spaces(2) + bg.Render(e.Clock(), styles.FaintText) + bg.Space() +
			bg.Render(truncate(e.Text, m.width-12), style)
		lines = append(lines, bg.FillLine(line, m.width))
	}
	return strings.Join(lines, "\n")
}
