// Package render projects scores to the summary displayed in the scoreboard message. Rendering is
// deterministic apart from the timestamp
package render

import (
	"fmt"
	"github.com/shinyhunt/scorebot/scoreboard"
	"strings"
	"time"
)

// Display constants
const (
	DefaultBarWidth = 24
	Title           = "🏆 SCOREBOARD"
	Description     = "Current Standings"
	filledSegment   = "█"
	emptySegment    = "░"
)

var fieldNames = map[scoreboard.Team]string{
	scoreboard.NyanCat: "😼 NyanCats",
	scoreboard.Bocchi:  "🎩 The Butler Cafe",
}

// DigitRenderer renders a number as ascii art. *figlet4go.AsciiRender is one
type DigitRenderer interface {
	Render(str string) (string, error)
}

// Field is the rendered standing of one team
type Field struct {
	Team       scoreboard.Team
	Name       string
	Score      int
	Percentage int
	Bar        string

	// BigScore is the ascii art rendition of the score, empty unless big digits are enabled
	BigScore string
}

// Value returns the mrkdwn body of the field
func (f Field) Value() string {
	score := fmt.Sprintf("*%d*", f.Score)
	if f.BigScore != "" {
		score = fmt.Sprintf("```%s```", strings.TrimRight(f.BigScore, "\n "))
	}

	return fmt.Sprintf("%s\n%s\n(%d%%)", score, f.Bar, f.Percentage)
}

// Summary is the display structure of the scoreboard
type Summary struct {
	Title       string
	Description string
	Fields      []Field
	Footer      string
	Timestamp   time.Time
}

// Text returns a plain text rendition of the summary, used as the notification fallback
func (s Summary) Text() string {
	parts := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		parts = append(parts, fmt.Sprintf("%s: %d (%d%%)", f.Name, f.Score, f.Percentage))
	}

	return fmt.Sprintf("%s | %s", s.Title, strings.Join(parts, " | "))
}

type renderOptions struct {
	width  int
	now    func() time.Time
	digits DigitRenderer
}

// Option defines an option for Render
type Option func(o *renderOptions)

// Width sets the number of segments of the bars. Values lower than 1 are ignored
func Width(w int) Option {
	return func(o *renderOptions) {
		if w > 0 {
			o.width = w
		}
	}
}

// At sets the timestamp of the summary
func At(t time.Time) Option {
	return func(o *renderOptions) {
		o.now = func() time.Time { return t }
	}
}

// WithBigDigits renders scores as ascii art with the given renderer. Scores fall back to plain
// digits when the renderer fails
func WithBigDigits(r DigitRenderer) Option {
	return func(o *renderOptions) {
		o.digits = r
	}
}

// Render computes the summary for the scores. Percentages and bars are relative to the sum of
// scores, with a total of at least 1 so all-zero scores render as 0%
func Render(scores scoreboard.Scores, options ...Option) (s Summary) {
	opts := renderOptions{width: DefaultBarWidth, now: time.Now}
	for _, apply := range options {
		apply(&opts)
	}

	total := scores.Total()
	if total < 1 {
		total = 1
	}

	s = Summary{Title: Title, Description: Description, Timestamp: opts.now()}
	s.Footer = fmt.Sprintf("Big view, updated %s", s.Timestamp.Format("2006-01-02 15:04:05 MST"))
	s.Fields = make([]Field, 0, len(scoreboard.Teams))

	for _, t := range scoreboard.Teams {
		score := scores[t]
		filled := roundRatio(score, total, opts.width)

		f := Field{
			Team:       t,
			Name:       fieldNames[t],
			Score:      score,
			Percentage: roundRatio(score, total, 100),
			Bar:        strings.Repeat(filledSegment, filled) + strings.Repeat(emptySegment, max(0, opts.width-filled)),
		}

		if opts.digits != nil {
			if big, err := opts.digits.Render(fmt.Sprintf("%d", score)); err == nil {
				f.BigScore = big
			}
		}

		s.Fields = append(s.Fields, f)
	}

	return s
}

// roundRatio returns value/total*scale rounded half up, for non-negative value and positive total
func roundRatio(value, total, scale int) int {
	return (2*value*scale + total) / (2 * total)
}
