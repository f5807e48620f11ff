// Package curation implements the interactive terminal selector an operator
// uses to choose which candidate articles go into the newsletter.
//
// The selector is a small state machine. LIST shows a page of available
// articles next to everything already selected; ARTICLE_MENU and
// SELECTED_MENU act on one article from either collection; DETAILS shows a
// single article and returns to whichever menu opened it. The machine ends
// only when the operator confirms "done" with at least one article selected.
package curation

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"NewsletterCurator/internal/domain"
	"NewsletterCurator/internal/ports"
)

// PageSize is the number of available articles shown per page.
const PageSize = 5

// State identifies where the selector is.
type State int

const (
	StateList State = iota + 1
	StateArticleMenu
	StateSelectedMenu
	StateDetails
)

func (s State) String() string {
	switch s {
	case StateList:
		return "LIST"
	case StateArticleMenu:
		return "ARTICLE_MENU"
	case StateSelectedMenu:
		return "SELECTED_MENU"
	case StateDetails:
		return "DETAILS"
	default:
		return "UNKNOWN"
	}
}

// ErrInputClosed is returned when operator input ends before curation does.
var ErrInputClosed = errors.New("operator input closed before curation finished")

// Options configures the terminal the menu talks to.
type Options struct {
	In          io.Reader
	Out         io.Writer
	Colors      bool
	ClearScreen bool
	// Pause is how long the "nothing selected" notice stays up.
	Pause time.Duration
	Sleep func(context.Context, time.Duration) error
	Now   func() time.Time
}

// Menu owns the two partitions of the candidate list while curation runs.
// An article is in exactly one of available or selected.
type Menu struct {
	in    *bufio.Scanner
	out   io.Writer
	theme theme
	clear bool
	pause time.Duration
	sleep func(context.Context, time.Duration) error
	now   func() time.Time

	readOnce sync.Once
	lines    chan inputLine

	state         State
	page          int
	cursor        int
	detailsReturn State
	available     []*domain.Article
	selected      []*domain.Article
}

var _ ports.Curator = (*Menu)(nil)

// New builds a menu. Missing options fall back to no input, discarded
// output and a three second pause.
func New(opts Options) *Menu {
	if opts.In == nil {
		opts.In = strings.NewReader("")
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Pause <= 0 {
		opts.Pause = 3 * time.Second
	}
	if opts.Sleep == nil {
		opts.Sleep = sleepContext
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Menu{
		in:    bufio.NewScanner(opts.In),
		out:   opts.Out,
		theme: newTheme(opts.Colors),
		clear: opts.ClearScreen,
		pause: opts.Pause,
		sleep: opts.Sleep,
		now:   opts.Now,
		state: StateList,
		page:  1,
	}
}

// Curate runs the selector over a copy of articles and returns the
// operator's selection in the order it was made.
func (m *Menu) Curate(ctx context.Context, articles []*domain.Article) ([]*domain.Article, error) {
	m.available = slices.Clone(articles)
	m.selected = nil
	m.state = StateList
	m.page = 1

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		finished, err := m.step(ctx)
		if err != nil {
			return nil, err
		}
		if finished {
			m.clearScreen()
			return slices.Clone(m.selected), nil
		}
	}
}

// State reports the current state.
func (m *Menu) State() State { return m.state }

// Available returns the articles not yet chosen.
func (m *Menu) Available() []*domain.Article { return slices.Clone(m.available) }

// Selected returns the articles chosen so far.
func (m *Menu) Selected() []*domain.Article { return slices.Clone(m.selected) }

// step renders the current state, reads one line and applies it.
func (m *Menu) step(ctx context.Context) (bool, error) {
	switch m.state {
	case StateList:
		m.renderList()
		line, err := m.prompt(ctx, listOptions)
		if err != nil {
			return false, err
		}
		return m.handleList(ctx, line)

	case StateArticleMenu:
		m.clearScreen()
		line, err := m.prompt(ctx, articleMenuText(m.available[m.cursor].Title, "Put the article in the newsletter"))
		if err != nil {
			return false, err
		}
		m.handleArticleMenu(line)

	case StateSelectedMenu:
		m.clearScreen()
		line, err := m.prompt(ctx, articleMenuText(m.selected[m.cursor].Title, "Remove the article from the newsletter"))
		if err != nil {
			return false, err
		}
		m.handleSelectedMenu(line)

	case StateDetails:
		m.clearScreen()
		m.renderDetails(m.detailsArticle())
		if _, err := m.prompt(ctx, "Enter any key to go back.\n> "); err != nil {
			return false, err
		}
		m.state = m.detailsReturn

	default:
		return false, fmt.Errorf("unknown curation state %d", m.state)
	}
	return false, nil
}

func (m *Menu) handleList(ctx context.Context, line string) (bool, error) {
	input := strings.TrimSpace(line)

	switch strings.ToLower(input) {
	case "next":
		if m.page < m.maxPage() {
			m.page++
		}
		return false, nil
	case "prev":
		if m.page > 1 {
			m.page--
		}
		return false, nil
	case "done":
		return m.confirmDone(ctx)
	}

	if n, err := strconv.Atoi(input); err == nil && isDigits(input) {
		if n >= 1 && n <= len(m.available) {
			m.cursor = n - 1
			m.state = StateArticleMenu
		}
		return false, nil
	}

	if idx, ok := letterIndex(input); ok && idx < len(m.selected) {
		m.cursor = idx
		m.state = StateSelectedMenu
	}
	return false, nil
}

func (m *Menu) confirmDone(ctx context.Context) (bool, error) {
	if len(m.selected) == 0 {
		m.clearScreen()
		fmt.Fprintln(m.out, m.theme.warn.Sprint("You have not selected any articles."))
		fmt.Fprintf(m.out, "Returning to main menu in %d seconds...\n", int(m.pause.Round(time.Second)/time.Second))
		if err := m.sleep(ctx, m.pause); err != nil {
			return false, err
		}
		return false, nil
	}

	m.clearScreen()
	fmt.Fprintln(m.out, m.theme.heading.Sprint("You have selected:"))
	for i, a := range m.selected {
		fmt.Fprintf(m.out, "%-5s%s\n", fmt.Sprintf("(%d)", i+1), a.Title)
	}
	answer, err := m.prompt(ctx, "\nProceed to generate the newsletter? (Y/N)\n> ")
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

func (m *Menu) handleArticleMenu(line string) {
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return
	}

	switch choice {
	case 1:
		m.detailsReturn = StateArticleMenu
		m.state = StateDetails
	case 2:
		article := m.available[m.cursor]
		m.available = slices.Delete(m.available, m.cursor, m.cursor+1)
		m.selected = append(m.selected, article)
		m.state = StateList
	case 3:
		m.state = StateList
	}
}

func (m *Menu) handleSelectedMenu(line string) {
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return
	}

	switch choice {
	case 1:
		m.detailsReturn = StateSelectedMenu
		m.state = StateDetails
	case 2:
		article := m.selected[m.cursor]
		m.selected = slices.Delete(m.selected, m.cursor, m.cursor+1)
		m.available = append(m.available, article)
		m.state = StateList
	case 3:
		m.state = StateList
	}
}

func (m *Menu) detailsArticle() *domain.Article {
	if m.detailsReturn == StateSelectedMenu {
		return m.selected[m.cursor]
	}
	return m.available[m.cursor]
}

func (m *Menu) maxPage() int {
	pages := (len(m.available) + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

type inputLine struct {
	text string
	err  error
}

// prompt writes text and waits for one line of operator input or for ctx
// to end, whichever comes first.
func (m *Menu) prompt(ctx context.Context, text string) (string, error) {
	fmt.Fprint(m.out, text)
	m.readOnce.Do(m.startReader)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-m.lines:
		if !ok {
			return "", ErrInputClosed
		}
		if line.err != nil {
			return "", fmt.Errorf("read operator input: %w", line.err)
		}
		return line.text, nil
	}
}

// startReader moves the blocking Scan onto its own goroutine. It lives until
// the input ends; a read that is abandoned on cancellation stays buffered.
func (m *Menu) startReader() {
	m.lines = make(chan inputLine, 1)
	go func() {
		defer close(m.lines)
		for m.in.Scan() {
			m.lines <- inputLine{text: m.in.Text()}
		}
		if err := m.in.Err(); err != nil {
			m.lines <- inputLine{err: err}
		}
	}()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (m *Menu) clearScreen() {
	if m.clear {
		fmt.Fprint(m.out, "\033[H\033[2J")
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// letterIndex maps A/a to 0, B/b to 1 and so on.
func letterIndex(s string) (int, bool) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, false
	}
	r := unicode.ToUpper([]rune(s)[0])
	if r < 'A' || r > 'Z' {
		return 0, false
	}
	return int(r - 'A'), true
}
