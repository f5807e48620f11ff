package main

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"NewsletterCurator/internal/domain"
)

var candidateHeader = table.Row{"#", "Title", "Source", "Published", "Link"}

// Long titles and links wrap inside their column instead of stretching the
// table past the terminal.
var candidateColumns = []table.ColumnConfig{
	{Number: 1, Align: text.AlignRight},
	{Number: 2, WidthMax: 48},
	{Number: 3, WidthMax: 24},
	{Number: 4},
	{Number: 5, WidthMax: 64},
}

func candidateTable(articles []*domain.Article, now time.Time) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(candidateHeader)

	for i, a := range articles {
		published := "unknown"
		if a.PublishedAt != nil {
			published = humanize.RelTime(*a.PublishedAt, now, "ago", "from now")
		}
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), a.Title, a.SourceValue(), published, a.Link})
	}

	tw.SetColumnConfigs(candidateColumns)
	return tw.Render()
}
