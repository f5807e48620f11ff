// Package newsletter turns the curated selection into the published issue.
package newsletter

import (
	"NewsletterCurator/internal/domain"
)

// DateLayout formats the issue date, e.g. "January 02, 2006".
const DateLayout = "January 02, 2006"

// Context is the data a template renders.
type Context struct {
	Title       string
	Date        string
	Summary     string
	ArticleRows []map[string]string
}

// BuildContext flattens an issue into template data.
func BuildContext(issue domain.Issue) Context {
	rows := make([]map[string]string, 0, len(issue.Articles))
	for _, a := range issue.Articles {
		rows = append(rows, a.ToDict())
	}
	return Context{
		Title:       issue.Title,
		Date:        issue.Date.Format(DateLayout),
		Summary:     issue.Summary,
		ArticleRows: rows,
	}
}
