package scan

import (
	"bufio"
	"encoding/csv"
	"os"
	"strings"

	"bighole/internal/core/keynorm"
	"bighole/internal/core/match"
	"bighole/internal/core/row"
	"bighole/internal/services/lookup/domain"
)

// maxLineBytes bounds a single raw line; corpus rows are wide but flat
const maxLineBytes = 16 * 1024 * 1024

// ScanChunk sequentially scans one chunk of one file, matching every row
// against the variant set
// Each call opens its own file handle so sibling chunks share nothing
// Reported line numbers are 1-based over the raw file including the header
// A missing file yields an empty match list, not an error
func ScanChunk(path string, c domain.Chunk, vs keynorm.VariantSet) ([]domain.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	// discard the header plus the rows before the chunk, no field parsing
	skip := c.Start // header line + (Start-1) data rows
	for skip > 0 && sc.Scan() {
		skip--
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	var out []domain.Match
	for dataLine := c.Start; dataLine < c.End; dataLine++ {
		if !sc.Scan() {
			break // chunk ran past end of input
		}
		fields, ok := parseLine(sc.Text())
		if !ok {
			continue
		}
		if rec, ok := match.Row(fields, vs); ok {
			out = append(out, domain.Match{
				File:   path,
				Line:   dataLine + 1, // header offset
				Record: rec,
			})
		}
	}
	if err := sc.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// parseLine splits one raw line into fields
// Invalid UTF-8 bytes are replaced, never fatal; a line the CSV reader
// rejects outright is treated as a row that matches nothing
func parseLine(line string) (row.Fields, bool) {
	line = strings.ToValidUTF8(line, "�")
	if line == "" {
		return nil, false
	}
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	fields, err := r.Read()
	if err != nil {
		return nil, false
	}
	return row.Fields(fields), true
}
