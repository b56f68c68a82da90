package domain

import "fmt"

// ParseErrorKind classifies fatal extraction failures.
type ParseErrorKind int

const (
	// NoDataBlock means the markup has no preformatted block to read lines from.
	NoDataBlock ParseErrorKind = iota + 1
)

func (k ParseErrorKind) String() string {
	switch k {
	case NoDataBlock:
		return "no data block"
	default:
		return fmt.Sprintf("parse error kind %d", int(k))
	}
}

// ParseError is returned when a page cannot be parsed at all. Rejected lines
// and unparseable fields are not errors; they only lower the record count or
// zero a derived value.
type ParseError struct {
	Kind   ParseErrorKind
	Detail string
}

// ErrNoDataBlock matches any ParseError of kind NoDataBlock via errors.Is.
var ErrNoDataBlock = &ParseError{Kind: NoDataBlock}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Detail
}

// Is reports whether target is a ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}
