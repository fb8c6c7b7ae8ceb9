package render

import (
	"github.com/slack-go/slack"
)

// Blocks returns the slack layout of the summary: a header, the description, one section with
// a field per team and a context footer
func Blocks(s Summary) (blocks []slack.Block) {
	fields := make([]*slack.TextBlockObject, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, "*"+f.Name+"*\n"+f.Value(), false, false))
	}

	return []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, s.Title, true, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, "*"+s.Description+"*", false, false), nil, nil),
		slack.NewSectionBlock(nil, fields, nil),
		slack.NewContextBlock("", slack.NewTextBlockObject(slack.MarkdownType, s.Footer, false, false)),
	}
}
