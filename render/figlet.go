package render

import (
	"github.com/alexandre-normand/figlet4go"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// NewFigletDigits returns a DigitRenderer using figlet fonts. When fontPath is empty, the
// builtin standard font is used
func NewFigletDigits(fontPath string, fontName string) (r DigitRenderer, err error) {
	renderer := figlet4go.NewAsciiRender()
	options := figlet4go.NewRenderOptions()

	if fontPath != "" {
		path, err := homedir.Expand(fontPath)
		if err != nil {
			return nil, errors.Wrapf(err, "can't expand font path [%s]", fontPath)
		}

		if err = renderer.LoadFont(path); err != nil {
			return nil, errors.Wrapf(err, "can't load fonts from [%s]", path)
		}
	}

	if fontName != "" {
		options.FontName = fontName
	}

	return &figletDigits{renderer: renderer, options: options}, nil
}

type figletDigits struct {
	renderer *figlet4go.AsciiRender
	options  *figlet4go.RenderOptions
}

// Render renders str with the configured font
func (fd *figletDigits) Render(str string) (string, error) {
	return fd.renderer.RenderOpts(str, fd.options)
}
