package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Dark         bool
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
}

type styleSet struct {
	header lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
	panel  lipgloss.Style
	footer lipgloss.Style
	muted  lipgloss.Style
	cursor lipgloss.Style
	high   lipgloss.Style
	medium lipgloss.Style
	low    lipgloss.Style
	done   lipgloss.Style
	doing  lipgloss.Style
	todo   lipgloss.Style
}

var (
	lightStyles = styleSet{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("250")).Padding(0, 1),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		cursor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
		high:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		medium: lipgloss.NewStyle().Foreground(lipgloss.Color("136")),
		low:    lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		done:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		doing:  lipgloss.NewStyle().Foreground(lipgloss.Color("25")),
		todo:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
	darkStyles = styleSet{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		panel:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
		footer: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		cursor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		high:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		medium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		low:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		done:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		doing:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		todo:   lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	}
)

func stylesFor(dark bool) styleSet {
	if dark {
		return darkStyles
	}
	return lightStyles
}

func RenderApp(data AppData) string {
	st := stylesFor(data.Dark)
	left := st.panel.Width(62).Render(data.LeftPane)
	right := st.panel.Width(52).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := st.status.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = st.err.Render(data.StatusLine)
	}

	lines := []string{
		st.header.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, st.panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, st.footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders task descriptions; plain text is returned when
// glamour cannot render.
func RenderMarkdown(md string, dark bool) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if dark {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
