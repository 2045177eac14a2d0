package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/osa030/tunedeck/internal/app/view"
)

const sidebarWidth = 22

var accentColor = lipgloss.Color("#1DB954")

// Styles for the UI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	activeStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2A2A2A"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	sidebarStyle = lipgloss.NewStyle().
			Width(sidebarWidth).
			Padding(1, 1).
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#333333"))

	footerStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("#333333")).
			Padding(0, 1)
)

// View renders the model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	footer := m.renderFooter()
	bodyHeight := m.height - lipgloss.Height(footer)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	sidebar := sidebarStyle.Height(bodyHeight - 2).Render(renderSidebar(m.sidebar))
	main := lipgloss.NewStyle().
		Width(m.width - sidebarWidth - 3).
		Height(bodyHeight).
		Padding(0, 1).
		Render(m.renderMain(bodyHeight))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main),
		footer,
	)
}

func renderSidebar(sb view.Sidebar) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(sb.Title))
	b.WriteString("\n")
	for i, item := range sb.Items {
		label := fmt.Sprintf("%s %s", navKey(i), item.Label)
		if item.Active {
			b.WriteString(activeStyle.Bold(true).Render("▌" + label))
		} else {
			b.WriteString(" " + label)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(sb.Footer))
	return b.String()
}

// navKey is the number key bound to a sidebar entry; search uses /.
func navKey(i int) string {
	switch i {
	case 0:
		return "1"
	case 1:
		return "/"
	default:
		return "2"
	}
}

func (m Model) renderMain(height int) string {
	var lines []string

	title := m.page.title
	if m.loading {
		title = m.spinner.View() + " " + title
	}
	lines = append(lines, titleStyle.Render(title))

	if m.searching {
		lines = append(lines, m.input.View(), "")
	}
	if m.err != nil {
		lines = append(lines, errorStyle.Render("Error: "+m.err.Error()))
	}
	if m.status != "" {
		lines = append(lines, activeStyle.Render(m.status))
	}
	if m.page.artistID != "" {
		lines = append(lines, dimStyle.Render(followLabel(m.page.following)))
	}
	if m.page.collectionID != "" {
		lines = append(lines, dimStyle.Render(saveLabel(m.page.saved)))
	}

	top := len(lines)
	body := make([]string, len(m.page.entries))
	for i, e := range m.page.entries {
		body[i] = renderEntry(e, i == m.cursor)
	}

	// Scroll so the cursor stays visible.
	visible := height - top - 1
	start := 0
	if visible > 0 && m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := len(body)
	if visible > 0 && end > start+visible {
		end = start + visible
	}
	if start < end {
		lines = append(lines, body[start:end]...)
	}
	return strings.Join(lines, "\n")
}

func renderEntry(e entry, selected bool) string {
	var s string
	switch e.kind {
	case entryHeader:
		return "\n" + headerStyle.Render(e.text)
	case entryText:
		return dimStyle.Render(e.text)
	case entryRow:
		s = fmt.Sprintf("%s%3d  %-30s %-22s %5s", marker(e.row.Active, e.row.PlayingNow), e.row.Number,
			truncate(e.row.Title, 30), truncate(e.row.Artist, 22), e.row.Duration)
		if e.row.Active {
			s = activeStyle.Render(s)
		}
	case entryTile:
		s = fmt.Sprintf("%s%-30s %s", marker(e.tile.Active, e.tile.PlayingNow),
			truncate(e.tile.Title, 30), dimStyle.Render(truncate(e.tile.Subtitle, 40)))
		if e.tile.Active {
			s = activeStyle.Render(s)
		}
	}
	if selected {
		return cursorStyle.Render(s)
	}
	return s
}

func (m Model) renderFooter() string {
	f := m.footer

	info := headerStyle.Render(f.Title)
	if f.Artist != "" {
		info += dimStyle.Render(" · " + f.Artist)
	}

	controls := fmt.Sprintf("%s  %s  %s  %s  %s",
		toggleLabel("shuffle", f.Shuffle),
		iconLabel(f.PlayPauseIcon, f.ControlsEnabled),
		dimStyle.Render("prev/next"),
		toggleLabel(repeatLabel(f.RepeatIcon), f.RepeatOn),
		fmt.Sprintf("%s %d", f.VolumeIcon, f.Volume),
	)

	bar := dimStyle.Render("-:-- ") + m.progress.ViewAs(0) + dimStyle.Render(" -:--")
	if f.HasTrack {
		bar = f.Elapsed + " " + m.progress.ViewAs(f.Percent/100) + " " + f.Total
	}

	lines := []string{info, controls, bar}
	if m.help.ShowAll || m.height > 20 {
		lines = append(lines, m.help.View(m.keys))
	}
	return footerStyle.Width(m.width).Render(strings.Join(lines, "\n"))
}

func toggleLabel(label string, on bool) string {
	if on {
		return activeStyle.Render(label)
	}
	return dimStyle.Render(label)
}

func iconLabel(icon string, enabled bool) string {
	label := "▶ play"
	if icon == view.IconPause {
		label = "⏸ pause"
	}
	if !enabled {
		return dimStyle.Render(label)
	}
	return headerStyle.Render(label)
}

func repeatLabel(icon string) string {
	if icon == view.IconRepeatOne {
		return "repeat 1"
	}
	return "repeat"
}

func followLabel(following bool) string {
	if following {
		return "Following (f to unfollow)"
	}
	return "Not following (f to follow)"
}

func saveLabel(saved bool) string {
	if saved {
		return "In your library (L to remove)"
	}
	return "Not in your library (L to save)"
}

// marker flags the current item; playing items get a stronger mark.
func marker(active, playing bool) string {
	switch {
	case playing:
		return "♫ "
	case active:
		return "• "
	default:
		return "  "
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
