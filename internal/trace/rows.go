package trace

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const (
	KindWaypoints = "TRACE_WAYPOINTS"
	KindStatus    = "TRACE_STATUS"
)

// Row is one trace line split on single spaces.
type Row []string

// Kind returns the discriminator in field 2, or "" for rows too short to have one.
func (r Row) Kind() string {
	if len(r) < 2 {
		return ""
	}
	return r[1]
}

func splitLine(line string) Row {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return strings.Split(line, " ")
}

// TokenizeLines splits text into rows. Consecutive spaces produce empty
// tokens; a trailing newline does not produce an extra row.
func TokenizeLines(text string) []Row {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	rows := make([]Row, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, splitLine(line))
	}
	return rows
}

// ReadRows reads r to the end and tokenizes every line.
func ReadRows(r io.Reader) ([]Row, error) {
	br := bufio.NewReader(r)
	rows := make([]Row, 0)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			rows = append(rows, splitLine(line))
		}
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
	}
}

// Filter keeps rows whose discriminator equals kind, in input order.
func Filter(rows []Row, kind string) []Row {
	out := make([]Row, 0)
	for _, row := range rows {
		if len(row) >= 2 && row[1] == kind {
			out = append(out, row)
		}
	}
	return out
}
