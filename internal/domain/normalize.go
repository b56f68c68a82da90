package domain

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	daysPerYear  = 360
	daysPerMonth = 30

	// centuryCutoff splits two-digit years: above it 19YY, otherwise 20YY.
	centuryCutoff = 30
)

// leadingNumberRe matches the numeric prefix of a field, so "9.58A" reads as 9.58.
var leadingNumberRe = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)`)

// Normalize derives the comparable fields of raw. sequenceIndex is the
// record's 0-based position among the accepted records of its page; it becomes
// the record ID and the fallback rank. Unparseable fields yield zero values.
func Normalize(raw RawRecord, sequenceIndex int) NormalizedRecord {
	rec := NormalizedRecord{
		RawRecord:   raw,
		ID:          sequenceIndex,
		TimeSeconds: ParseTimeSeconds(raw.Time),
		DateValue:   DateOrdinal(raw.Date),
	}

	rank, err := strconv.Atoi(strings.TrimSpace(raw.Rank))
	if err != nil {
		rank = sequenceIndex + 1
		rec.Rank = strconv.Itoa(rank)
	}
	rec.RankValue = rank

	birth := DateOrdinal(raw.BirthDate)
	if rec.DateValue != 0 && birth != 0 {
		rec.AgeValue = rec.DateValue - birth
		rec.AgeYears = floorDiv(rec.AgeValue, daysPerYear)
	}
	return rec
}

// ParseTimeSeconds converts a performance to seconds: "h:mm:ss.f", "m:ss.ff"
// or a bare number (sub-minute times, field-event marks, points). It returns 0
// when any component has no numeric content.
func ParseTimeSeconds(s string) float64 {
	parts := strings.Split(strings.TrimSpace(s), ":")

	var h, m, sec float64
	var ok bool
	switch len(parts) {
	case 3:
		h, ok = leadingFloat(parts[0])
		if ok {
			m, ok = leadingFloat(parts[1])
		}
		if ok {
			sec, ok = leadingFloat(parts[2])
		}
	case 2:
		m, ok = leadingFloat(parts[0])
		if ok {
			sec, ok = leadingFloat(parts[1])
		}
	case 1:
		sec, ok = leadingFloat(parts[0])
	}
	if !ok {
		return 0
	}

	total := h*3600 + m*60 + sec
	if total < 0 {
		return 0
	}
	return total
}

// DateOrdinal maps "DD.MM.YYYY" (or "DD.MM.YY") onto the approximate 360-day
// calendar: year*360 + month*30 + day. The value orders dates and buckets them
// by year; it is not a real day count. Malformed dates yield 0.
func DateOrdinal(s string) int {
	day, month, year, ok := splitDate(s)
	if !ok {
		return 0
	}
	return year*daysPerYear + month*daysPerMonth + day
}

// BirthYear returns the four-digit year of a birth date, resolving two-digit
// years with [ResolveYear].
func BirthYear(dob string) (int, bool) {
	_, _, year, ok := splitDate(dob)
	return year, ok
}

// ResolveYear expands a two-digit year: values above 30 are 19YY, the rest
// 20YY. Years of three or more digits are returned unchanged. The cutoff is not
// checked against the event date, so it can misplace athletes born near it.
func ResolveYear(yy int) int {
	switch {
	case yy >= 100:
		return yy
	case yy > centuryCutoff:
		return 1900 + yy
	default:
		return 2000 + yy
	}
}

func splitDate(s string) (day, month, year int, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	var okD, okM, okY bool
	day, okD = leadingInt(parts[0])
	month, okM = leadingInt(parts[1])
	year, okY = leadingInt(parts[2])
	if !okD || !okM || !okY {
		return 0, 0, 0, false
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 0 {
		return 0, 0, 0, false
	}
	return day, month, ResolveYear(year), true
}

func leadingFloat(s string) (float64, bool) {
	m := leadingNumberRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
