package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/athletics-rankings-etl/internal/catalog"
	"github.com/couchcryptid/athletics-rankings-etl/internal/domain"
)

// Output formats accepted by --output.
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTable = "table"
)

func validateFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML, FormatTable:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want json, yaml, or table)", format)
	}
}

// writeResultSet renders rs in the requested format.
func writeResultSet(w io.Writer, format string, rs domain.ResultSet) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rs); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable:
		rows := [][]string{{"RANK", "TIME", "WIND", "ATHLETE", "COUNTRY", "DOB", "POS", "LOCATION", "DATE", "AGE"}}
		for _, r := range rs.Records {
			age := ""
			if r.AgeValue != 0 {
				age = strconv.Itoa(r.AgeYears)
			}
			rows = append(rows, []string{
				r.Rank, r.Time, r.Wind, r.Athlete, r.Country,
				r.BirthDate, r.Position, r.Location, r.Date, age,
			})
		}
		return writeTable(w, rows)
	default:
		return validateFormat(format)
	}
}

// writeEvents renders the catalog in the requested format.
func writeEvents(w io.Writer, format string, events []catalog.Event) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(events); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable:
		rows := [][]string{{"CODE", "NAME", "CUTOFF", "PATH"}}
		for _, e := range events {
			rows = append(rows, []string{e.Code, e.Name, strconv.FormatFloat(e.Cutoff, 'f', -1, 64), e.Path})
		}
		return writeTable(w, rows)
	default:
		return validateFormat(format)
	}
}

// writeTable writes rows as space-padded columns. Widths are measured in
// display cells so accented and wide names stay aligned.
func writeTable(w io.Writer, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.Reset()
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString("  ")
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(sb.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
