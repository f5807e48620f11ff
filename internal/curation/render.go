package curation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"NewsletterCurator/internal/domain"
)

const (
	titleWidth = 20
	columnGap  = "     "
	detailDate = "02/01/2006"
	unknown    = "Unknown"
)

const listOptions = "\nOptions:\n" +
	"  <number>  open an available article\n" +
	"  <letter>  open a selected article\n" +
	"  next / prev  change page\n" +
	"  done      finish and generate the newsletter\n> "

type theme struct {
	heading  *color.Color
	selected *color.Color
	label    *color.Color
	warn     *color.Color
}

func newTheme(enabled bool) theme {
	t := theme{
		heading:  color.New(color.Bold, color.FgCyan),
		selected: color.New(color.FgGreen),
		label:    color.New(color.Bold),
		warn:     color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{t.heading, t.selected, t.label, t.warn} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return t
}

// renderList prints the current page of available articles beside the
// full selected column.
func (m *Menu) renderList() {
	if m.page > m.maxPage() {
		m.page = m.maxPage()
	}
	start := (m.page - 1) * PageSize
	end := min(start+PageSize, len(m.available))
	page := m.available[start:end]

	m.clearScreen()

	leftWidth := 5 + titleWidth
	fmt.Fprintf(m.out, "%s%s%s\n",
		m.theme.heading.Sprint(pad("Available articles", leftWidth)), columnGap,
		m.theme.heading.Sprint("Selected articles"))
	fmt.Fprintf(m.out, "%s%s%s\n", strings.Repeat("=", leftWidth), columnGap, strings.Repeat("=", leftWidth))

	rows := max(len(page), len(m.selected))
	for i := 0; i < rows; i++ {
		left := strings.Repeat(" ", leftWidth)
		if i < len(page) {
			left = pad(fmt.Sprintf("(%d)", start+i+1), 5) + pad(truncate(page[i].Title, titleWidth), titleWidth)
		}
		right := ""
		if i < len(m.selected) {
			right = m.theme.selected.Sprint(pad(letterLabel(i), 5) + truncate(m.selected[i].Title, titleWidth))
		}
		fmt.Fprintln(m.out, strings.TrimRight(left+columnGap+right, " "))
	}

	fmt.Fprintf(m.out, "\nPage %d of %d\n", m.page, m.maxPage())
}

func articleMenuText(title, action string) string {
	return fmt.Sprintf("%s\n\n1. See article details\n2. %s\n3. Back to the list\n> ", title, action)
}

func (m *Menu) renderDetails(a *domain.Article) {
	date := unknown
	if a.PublishedAt != nil {
		date = fmt.Sprintf("%s (%s)", a.PublishedAt.Format(detailDate),
			humanize.RelTime(*a.PublishedAt, m.now(), "ago", "from now"))
	}

	source := a.SourceValue()
	if source == "" {
		source = unknown
	}

	tags := "None"
	if len(a.Tags) > 0 {
		tags = strings.Join(a.Tags, ", ")
	}

	summary := a.SummaryValue()
	if summary == "" {
		summary = "None"
	}

	field := func(name, value string) {
		fmt.Fprintf(m.out, "%s %s\n", m.theme.label.Sprint(name+":"), value)
	}
	field("Title", a.Title)
	field("Date", date)
	field("Source", source)
	field("Link", a.Link)
	field("Tags", tags)
	field("Summary", summary)
	fmt.Fprintln(m.out)
}

// truncate shortens s to width runes, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}

// pad right-fills s with spaces up to width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func letterLabel(i int) string {
	if i < 26 {
		return fmt.Sprintf("(%c)", 'A'+i)
	}
	return "(*)"
}
