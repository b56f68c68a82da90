package domain

import "time"

// RawRecord is one accepted ranking line split into its source columns.
// Every field is trimmed; Wind is empty for windless events.
type RawRecord struct {
	Rank      string `json:"rank" yaml:"rank"`
	Time      string `json:"time" yaml:"time"`
	Wind      string `json:"wind,omitempty" yaml:"wind,omitempty"`
	Athlete   string `json:"athlete" yaml:"athlete"`
	Country   string `json:"country" yaml:"country"`
	BirthDate string `json:"dob" yaml:"dob"`
	Position  string `json:"position" yaml:"position"`
	Location  string `json:"location" yaml:"location"`
	Date      string `json:"date" yaml:"date"`
}

// NormalizedRecord is a RawRecord with comparable numeric fields derived from it.
type NormalizedRecord struct {
	RawRecord `yaml:",inline"`

	// ID is the record's position in the accepted sequence of its result set.
	// It is an opaque join key for selection state, not a result identifier.
	ID int `json:"id" yaml:"id"`

	RankValue   int     `json:"rankValue" yaml:"rankValue"`
	TimeSeconds float64 `json:"timeSeconds" yaml:"timeSeconds"`
	DateValue   int     `json:"dateValue" yaml:"dateValue"`
	AgeValue    int     `json:"ageValue" yaml:"ageValue"`
	AgeYears    int     `json:"ageYears" yaml:"ageYears"`
}

// LineStats counts candidate lines seen by the parser.
type LineStats struct {
	Lines    int
	Accepted int
	Rejected int
}

// Rankings is the parsed content of one ranking page.
type Rankings struct {
	Records []NormalizedRecord
	Stats   LineStats
}

// ResultSet is the serialized form persisted by the result cache and served by
// the HTTP API.
type ResultSet struct {
	Event     string             `json:"event,omitempty" yaml:"event,omitempty"`
	Success   bool               `json:"success" yaml:"success"`
	Count     int                `json:"count" yaml:"count"`
	FetchedAt time.Time          `json:"fetched_at" yaml:"fetched_at"`
	Records   []NormalizedRecord `json:"records" yaml:"records"`
	Error     string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewResultSet wraps records for an event code, stamped with the current time.
func NewResultSet(code string, records []NormalizedRecord) ResultSet {
	if records == nil {
		records = []NormalizedRecord{}
	}
	return ResultSet{
		Event:     code,
		Success:   true,
		Count:     len(records),
		FetchedAt: clock.Now().UTC(),
		Records:   records,
	}
}

// FailedResultSet reports a failed request for an event code.
func FailedResultSet(code string, err error) ResultSet {
	rs := ResultSet{
		Event:   code,
		Records: []NormalizedRecord{},
	}
	if err != nil {
		rs.Error = err.Error()
	}
	return rs
}
