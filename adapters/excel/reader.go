package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"strings"
	"time"

	apperrors "handlestats/internal/errors"

	"github.com/xuri/excelize/v2"
)

const (
	FormatDelimited = "delimited"
	FormatXLSX      = "xlsx"

	// rows inspected when guessing the delimiter
	sniffRows = 10
)

// Candidate delimiters in preference order.
var delimiters = []rune{',', '\t', '|', ';'}

var (
	zipMagic = []byte("PK\x03\x04")
	utf8BOM  = "\ufeff"
)

// DataReader turns raw survey bytes into a Table. It handles delimited text
// and xlsx workbooks.
type DataReader struct {
	comma rune
}

// NewDataReader creates a reader that auto-detects the delimiter.
func NewDataReader() *DataReader {
	return &DataReader{}
}

// WithDelimiter pins the delimiter instead of detecting it.
func (r *DataReader) WithDelimiter(comma rune) *DataReader {
	return &DataReader{comma: comma}
}

// ReadData parses data as an xlsx workbook when it carries the zip signature,
// otherwise as delimited text.
func (r *DataReader) ReadData(data []byte) (*Table, error) {
	if bytes.HasPrefix(data, zipMagic) {
		return r.readExcelData(data)
	}
	return r.readDelimitedData(string(data))
}

// readExcelData reads the first sheet of a workbook
func (r *DataReader) readExcelData(data []byte) (*Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.ParseFailed("failed to open Excel workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.ParseFailed("Excel workbook has no sheets", nil)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.ParseFailed("failed to read sheet "+sheets[0], err)
	}
	log.Printf("[DataReader] Sheet %q read in %.2fms (%d rows)",
		sheets[0], float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	table, err := r.processRows(rows)
	if err != nil {
		return nil, err
	}
	table.Format = FormatXLSX
	return table, nil
}

// readDelimitedData reads CSV-like text, tolerating ragged rows and stray quotes
func (r *DataReader) readDelimitedData(text string) (*Table, error) {
	text = strings.TrimPrefix(text, utf8BOM)

	comma := r.comma
	if comma == 0 {
		comma = DetectDelimiter(text)
	}

	reader := newLenientReader(text, comma)
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.ParseFailed("failed to read delimited text", err)
	}
	log.Printf("[DataReader] Delimited text read in %.2fms (%d rows, delimiter %q)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows), comma)

	table, err := r.processRows(rows)
	if err != nil {
		return nil, err
	}
	table.Format = FormatDelimited
	table.Comma = comma
	return table, nil
}

// processRows splits off the header and drops fully blank rows
func (r *DataReader) processRows(rows [][]string) (*Table, error) {
	// skip blank lines before the header
	for len(rows) > 0 && isBlank(rows[0]) {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, apperrors.ParseFailed("survey export has no header row", nil)
	}

	headers := dedupeHeaders(rows[0])
	dataRows := make([]RawRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		dataRows = append(dataRows, RawRow(row))
	}

	log.Printf("[DataReader] Table processed (%d columns, %d rows)", len(headers), len(dataRows))

	return &Table{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

// dedupeHeaders renames repeated header names in order. The first occurrence
// keeps its name and later ones get _1, _2, ... skipping names already taken.
func dedupeHeaders(row []string) []string {
	headers := make([]string, len(row))
	taken := make(map[string]bool, len(row))
	for _, h := range row {
		taken[h] = true
	}

	seen := make(map[string]int, len(row))
	for i, h := range row {
		n := seen[h]
		seen[h] = n + 1
		if n == 0 {
			headers[i] = h
			continue
		}
		name := fmt.Sprintf("%s_%d", h, n)
		for taken[name] {
			n++
			name = fmt.Sprintf("%s_%d", h, n)
		}
		seen[h] = n + 1
		taken[name] = true
		headers[i] = name
		log.Printf("[DataReader] Renamed duplicate header %q at column %d to %q", h, i+1, name)
	}
	return headers
}

// DetectDelimiter guesses the delimiter from the first rows of text. It picks the
// candidate whose field count is most stable across rows, preferring wider rows
// on ties, and falls back to a comma.
func DetectDelimiter(text string) rune {
	best := ','
	bestDelta := -1
	bestAvg := 0.0

	for _, comma := range delimiters {
		reader := newLenientReader(text, comma)

		rows, total, delta, prev := 0, 0, 0, -1
		for rows < sniffRows {
			record, err := reader.Read()
			if err != nil {
				break
			}
			if isBlank(record) {
				continue
			}
			n := len(record)
			total += n
			if prev >= 0 {
				delta += abs(n - prev)
			}
			prev = n
			rows++
		}
		if rows == 0 {
			continue
		}

		avg := float64(total) / float64(rows)
		if avg <= 1.99 {
			continue
		}
		if bestDelta < 0 || delta < bestDelta || (delta == bestDelta && avg > bestAvg) {
			best, bestDelta, bestAvg = comma, delta, avg
		}
	}
	return best
}

func newLenientReader(text string, comma rune) *csv.Reader {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
