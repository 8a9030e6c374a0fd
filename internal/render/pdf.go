package render

import (
	"fmt"
	"io"
	"time"

	"github.com/signintech/gopdf"
)

// Info is the PDF metadata block.
type Info struct {
	Title   string
	Subject string
	Author  string
}

// PDF paints documents with gopdf. Output is byte-stable for a fixed clock.
type PDF struct {
	Now func() time.Time
}

// Write paints doc as a single page PDF onto w.
func (p PDF) Write(w io.Writer, doc Document, info Info) error {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		Unit:     gopdf.UnitPT,
		PageSize: gopdf.Rect{W: doc.Page.W, H: doc.Page.H},
	})
	for _, name := range []string{fontRegular, fontBold} {
		if err := pdf.AddTTFFontData(name, fontData[name]); err != nil {
			return fmt.Errorf("load font %s: %w", name, err)
		}
	}
	pdf.SetInfo(gopdf.PdfInfo{
		Title:        info.Title,
		Subject:      info.Subject,
		Author:       info.Author,
		Creator:      "edujobs",
		Producer:     "edujobs",
		CreationDate: p.now(),
	})
	pdf.AddPage()

	x, y := doc.contentOrigin()
	width := doc.ContentWidth()
	for _, el := range doc.Elements {
		y += el.SpaceBefore
		next, err := paintElement(pdf, el, x, y, width)
		if err != nil {
			return err
		}
		y = next + el.SpaceAfter
	}

	if b := doc.Border; b != nil {
		pdf.SetLineWidth(b.Width)
		pdf.SetStrokeColor(b.Color.R, b.Color.G, b.Color.B)
		left, top := doc.Margin, doc.Margin
		right, bottom := doc.Page.W-doc.Margin, y+b.Padding
		half := b.Width / 2
		pdf.Line(left-half, top, right+half, top)
		pdf.Line(right, top, right, bottom)
		pdf.Line(right+half, bottom, left-half, bottom)
		pdf.Line(left, bottom, left, top)
	}

	if _, err := pdf.WriteTo(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func paintElement(pdf *gopdf.GoPdf, el Element, x, y, width float64) (float64, error) {
	h := lineHeight(el.Size)
	if el.Text == "" {
		return y + h, nil
	}
	if err := pdf.SetFont(fontFor(el), "", el.Size); err != nil {
		return y, fmt.Errorf("set font: %w", err)
	}
	lines, err := pdf.SplitText(el.Text, width)
	if err != nil {
		return y, fmt.Errorf("split %q: %w", el.Text, err)
	}
	align := gopdf.Left | gopdf.Top
	if el.Align == AlignCenter {
		align = gopdf.Center | gopdf.Top
	}
	for _, line := range lines {
		pdf.SetXY(x, y)
		if err := pdf.CellWithOption(&gopdf.Rect{W: width, H: h}, line, gopdf.CellOption{Align: align}); err != nil {
			return y, fmt.Errorf("paint %q: %w", line, err)
		}
		y += h
	}
	return y, nil
}

func (p PDF) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
