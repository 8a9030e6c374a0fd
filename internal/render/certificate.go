package render

import "time"

// CertificateSource is the snapshot a certificate is rendered from.
type CertificateSource struct {
	RecipientName  string
	RecipientEmail string
	CourseTitle    string
	Code           string
	IssuedAt       time.Time
}

var certificateBlue = RGB{R: 0x1e, G: 0x40, B: 0xaf}

// CertificateDocument lays out the bordered completion certificate.
func CertificateDocument(src CertificateSource) Document {
	return Document{
		Page:   PageA4,
		Margin: 50,
		Border: &Border{Width: 4, Color: certificateBlue, Padding: 30},
		Elements: []Element{
			{Text: "Certificate", Size: 32, Bold: true, Align: AlignCenter, SpaceAfter: 10},
			{Text: "OF COMPLETION", Size: 18, Align: AlignCenter, SpaceAfter: 40},
			{Text: "This certifies that", Size: 14, Align: AlignCenter},
			{Text: fallback(src.RecipientName, src.RecipientEmail), Size: 28, Bold: true, Align: AlignCenter, SpaceBefore: 20, SpaceAfter: 20},
			{Text: "has successfully completed the course", Size: 14, Align: AlignCenter},
			{Text: src.CourseTitle, Size: 20, Align: AlignCenter, SpaceBefore: 10, SpaceAfter: 10},
			{Text: "Issued on " + IssuedOn(src.IssuedAt), Size: 12, Align: AlignCenter, SpaceBefore: 50},
			{Text: "Certificate ID: " + src.Code, Size: 12, Align: AlignCenter, SpaceBefore: 50},
		},
	}
}

// IssuedOn formats t like "Tue Mar 05 2024".
func IssuedOn(t time.Time) string {
	return t.Format("Mon Jan 02 2006")
}
