package render

import (
	"fmt"
	"time"
)

// Experience is one entry of the CV work history.
type Experience struct {
	Title     string
	Company   string
	StartDate *time.Time
	EndDate   *time.Time
}

// CVSource is the snapshot a CV is rendered from.
type CVSource struct {
	Name        string
	Email       string
	Bio         string
	Skills      []string
	Experiences []Experience
}

const (
	cvBodySize  = 12
	cvTitleSize = 20
)

// CVDocument lays out a single page CV.
func CVDocument(src CVSource) Document {
	els := []Element{
		{Text: fallback(src.Name, "Curriculum Vitae"), Size: cvTitleSize, Bold: true, SpaceAfter: lineHeight(cvTitleSize)},
		{Text: "Email: " + src.Email, Size: cvBodySize},
		{Text: "Bio: " + fallback(src.Bio, "-"), Size: cvBodySize, SpaceAfter: lineHeight(cvBodySize)},
		{Text: "Skills:", Size: cvBodySize},
	}
	for _, skill := range src.Skills {
		els = append(els, Element{Text: bullet(skill), Size: cvBodySize})
	}
	if len(src.Experiences) > 0 {
		els = append(els, Element{Text: "Experience:", Size: cvBodySize, SpaceBefore: lineHeight(cvBodySize)})
		for _, exp := range src.Experiences {
			els = append(els, Element{Text: bullet(experienceLine(exp)), Size: cvBodySize})
		}
	}
	return Document{
		Page:     PageLetter,
		Margin:   72,
		Elements: els,
	}
}

func experienceLine(exp Experience) string {
	line := exp.Title
	if exp.Company != "" {
		line += " at " + exp.Company
	}
	if exp.StartDate == nil {
		return line
	}
	end := "Present"
	if exp.EndDate != nil {
		end = exp.EndDate.Format("Jan 2006")
	}
	return fmt.Sprintf("%s (%s - %s)", line, exp.StartDate.Format("Jan 2006"), end)
}
