package render

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	fontRegular = "goregular"
	fontBold    = "gobold"
)

var fontData = map[string][]byte{
	fontRegular: goregular.TTF,
	fontBold:    gobold.TTF,
}

func fontFor(el Element) string {
	if el.Bold {
		return fontBold
	}
	return fontRegular
}
