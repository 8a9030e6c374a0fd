package jobs

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const nbsp = "\u00a0"

var idPrinter = message.NewPrinter(language.Indonesian)

// Compact IDR suffixes as rendered by the id-ID locale.
var idrUnits = []struct {
	scale  float64
	suffix string
}{
	{1e3, "rb"},
	{1e6, "jt"},
	{1e9, "M"},
	{1e12, "T"},
}

var monthsID = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// wib is Western Indonesia Time, the zone job dates are shown in.
var wib = time.FixedZone("WIB", 7*60*60)

// FormatIDR renders amount in compact rupiah notation with at most one
// fraction digit, e.g. 5500000 -> "Rp 5,5 jt".
func FormatIDR(amount int64) string {
	sign := ""
	v := float64(amount)
	if v < 0 {
		sign = "-"
		v = -v
	}

	unit := -1
	for i := len(idrUnits) - 1; i >= 0; i-- {
		if v >= idrUnits[i].scale {
			unit = i
			break
		}
	}
	scaled := v
	if unit >= 0 {
		scaled = v / idrUnits[unit].scale
	}
	scaled = roundTo(scaled, 1)
	if unit < len(idrUnits)-1 && scaled >= 1000 {
		unit++
		scaled = roundTo(v/idrUnits[unit].scale, 1)
	}

	out := sign + "Rp" + nbsp + idPrinter.Sprint(number.Decimal(scaled, number.MaxFractionDigits(1)))
	if unit >= 0 {
		out += nbsp + idrUnits[unit].suffix
	}
	return out
}

// FormatPaycheck describes a salary range. Zero bounds are treated as unset.
func FormatPaycheck(lo, hi int64) string {
	switch {
	case lo == 0 && hi == 0:
		return "Undisclosed"
	case lo != 0 && hi != 0:
		return FormatIDR(lo) + " - " + FormatIDR(hi)
	case lo != 0:
		return "From " + FormatIDR(lo)
	default:
		return "Up to " + FormatIDR(hi)
	}
}

// FormatDateID renders t as "d MMMM yyyy" in Indonesian, in WIB.
func FormatDateID(t time.Time) string {
	t = t.In(wib)
	return fmt.Sprintf("%d %s %d", t.Day(), monthsID[t.Month()-1], t.Year())
}

// HireRate is hired over applicants as a percentage, one decimal place.
// Zero applicants count as one.
func HireRate(hired, applicants int) float64 {
	if applicants < 1 {
		applicants = 1
	}
	return roundTo(float64(hired)/float64(applicants)*100, 1)
}

// WebsiteURL prefixes bare hosts with https://.
func WebsiteURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "http") {
		return raw
	}
	return "https://" + raw
}

func displayLocation(job Job, companyAddress string) string {
	switch {
	case job.Location != "":
		return strings.ToUpper(job.Location)
	case companyAddress != "":
		return strings.ToUpper(companyAddress)
	default:
		return "JOB LOCATION"
	}
}

func displayLevel(level string) string {
	if level == "" {
		return "ANY"
	}
	return level
}

// displayType turns FULL_TIME into "FULL TIME". Only the first underscore is replaced.
func displayType(t string) string {
	return strings.Replace(t, "_", " ", 1)
}

func fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
