package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"NewsletterCurator/internal/config"
	"NewsletterCurator/internal/domain"
	"NewsletterCurator/internal/ports"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier announces a finished issue in a Telegram chat via the bot API.
type Notifier struct {
	botToken string
	chatID   string
	apiBase  string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(cfg config.TelegramConfig) *Notifier {
	return &Notifier{
		botToken: cfg.BotToken,
		chatID:   cfg.ChatID,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// Configured reports whether both token and chat are set.
func (n *Notifier) Configured() bool {
	return n.botToken != "" && n.chatID != ""
}

// WithAPIBase points the notifier at another bot API root.
func (n *Notifier) WithAPIBase(base string) *Notifier {
	n.apiBase = strings.TrimRight(base, "/")
	return n
}

// PublishIssue posts the issue title with a line per article.
func (n *Notifier) PublishIssue(ctx context.Context, issue domain.Issue) error {
	if !n.Configured() || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", FormatIssue(issue))
	form.Set("parse_mode", "Markdown")
	form.Set("disable_web_page_preview", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

// FormatIssue renders the Markdown announcement.
func FormatIssue(issue domain.Issue) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s*\n%s\n", markdownEscape(issue.Title), issue.Date.Format("January 02, 2006"))
	if issue.Summary != "" {
		fmt.Fprintf(&sb, "\n%s\n", markdownEscape(issue.Summary))
	}
	sb.WriteString("\n")
	for i, a := range issue.Articles {
		fmt.Fprintf(&sb, "%d. [%s](%s)\n", i+1, markdownEscape(a.Title), a.Link)
	}
	return strings.TrimRight(sb.String(), "\n")
}

var markdownReplacer = strings.NewReplacer("_", `\_`, "*", `\*`, "[", `\[`, "`", "\\`")

func markdownEscape(s string) string {
	return markdownReplacer.Replace(s)
}
