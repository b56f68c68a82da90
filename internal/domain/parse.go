package domain

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	minLineTokens = 8
	maxWind       = 10.0
)

var (
	// columnSepRe splits columns; single spaces inside names are kept. Pages pad
	// columns with &nbsp; as well as spaces, so Unicode space separators count.
	columnSepRe = regexp.MustCompile(`[\s\p{Zs}]{2,}`)

	// windRe matches a signed decimal reading such as "+0.9", "-1.2", "±0.0" or "2".
	windRe = regexp.MustCompile(`^[+\-±]?\d*\.?\d+$`)
)

// Wind is the result of wind-column classification: either HasWind(value)
// or NoWind.
type Wind struct {
	Value   string
	Present bool
}

// NoWind marks a record without a wind column.
var NoWind = Wind{}

// HasWind marks a record whose third column is the wind reading v.
func HasWind(v string) Wind {
	return Wind{Value: v, Present: true}
}

// Offset is the number of columns the wind reading shifts the remaining fields by.
func (w Wind) Offset() int {
	if w.Present {
		return 1
	}
	return 0
}

// ClassifyWind decides whether parts carries a wind column at index 2.
// A line has one only when it has at least nine tokens and parts[2] looks like
// a plausible wind reading (|w| ≤ 10 m/s). A field-event line with a numeric
// athlete column cannot be told apart by shape alone; the token count settles it.
func ClassifyWind(parts []string) Wind {
	if len(parts) < minLineTokens+1 {
		return NoWind
	}
	candidate := parts[2]
	if !windRe.MatchString(candidate) {
		return NoWind
	}
	magnitude, ok := windMagnitude(candidate)
	if !ok || magnitude > maxWind {
		return NoWind
	}
	return HasWind(candidate)
}

func windMagnitude(s string) (float64, bool) {
	s = strings.TrimLeft(s, "+-±")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Tokenize splits a line into columns on runs of two or more whitespace or
// no-break space characters, dropping empty tokens.
func Tokenize(line string) []string {
	raw := columnSepRe.Split(strings.TrimSpace(line), -1)
	parts := raw[:0]
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// ParseLine turns a candidate line into a RawRecord. It reports false when the
// line is too short or its first column is not a numeric rank; such lines are
// expected noise, not errors. Columns missing at the end of an accepted line
// are left empty.
func ParseLine(line string) (RawRecord, bool) {
	parts := Tokenize(line)
	if len(parts) < minLineTokens {
		return RawRecord{}, false
	}
	if !isDigits(parts[0]) {
		return RawRecord{}, false
	}

	wind := ClassifyWind(parts)
	off := wind.Offset()

	return RawRecord{
		Rank:      parts[0],
		Time:      parts[1],
		Wind:      wind.Value,
		Athlete:   at(parts, 2+off),
		Country:   at(parts, 3+off),
		BirthDate: at(parts, 4+off),
		Position:  at(parts, 5+off),
		Location:  at(parts, 6+off),
		Date:      at(parts, 7+off),
	}, true
}

func at(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
