// Package render lays out export documents and paints them as PDF.
package render

// Align is the horizontal alignment of an element inside the content box.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// PageSize is a page in points.
type PageSize struct {
	W, H float64
}

var (
	PageA4     = PageSize{W: 595.28, H: 841.89}
	PageLetter = PageSize{W: 612, H: 792}
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Border draws a stroked box around the content with inner padding.
type Border struct {
	Width   float64
	Color   RGB
	Padding float64
}

// Element is one block of text. Long text wraps to the content width.
type Element struct {
	Text        string
	Size        float64
	Bold        bool
	Align       Align
	SpaceBefore float64
	SpaceAfter  float64
}

// Document is a single page of text elements painted top to bottom.
type Document struct {
	Page     PageSize
	Margin   float64
	Border   *Border
	Elements []Element
}

// Lines returns the text of every element in paint order.
func (d Document) Lines() []string {
	out := make([]string, 0, len(d.Elements))
	for _, el := range d.Elements {
		out = append(out, el.Text)
	}
	return out
}

// ContentWidth is the width available to text.
func (d Document) ContentWidth() float64 {
	w := d.Page.W - 2*d.Margin
	if d.Border != nil {
		w -= 2 * d.Border.Padding
	}
	return w
}

func (d Document) contentOrigin() (x, y float64) {
	x, y = d.Margin, d.Margin
	if d.Border != nil {
		x += d.Border.Padding
		y += d.Border.Padding
	}
	return x, y
}

const lineHeightFactor = 1.2

func lineHeight(size float64) float64 {
	return size * lineHeightFactor
}
