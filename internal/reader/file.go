package reader

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
)

// TimestampLayout is the timestamp format of update records. The fractional
// seconds are optional.
const TimestampLayout = "2006-01-02T15:04:05.999999"

// FileReader reads update records of the form SYMBOL,TIMESTAMP,PRICE.
// Records are separated by whitespace or newlines; blank lines are skipped.
type FileReader struct {
	scanner *bufio.Scanner
	// newlines consumed so far, and the line of the current record
	newlines   int
	recordLine int
	closer     io.Closer
}

// NewFileReader creates a reader over r. Records are scanned one at a time,
// so line length is not limited.
func NewFileReader(r io.Reader) *FileReader {
	fr := &FileReader{scanner: bufio.NewScanner(r)}
	fr.scanner.Split(fr.scanRecords)
	return fr
}

// scanRecords splits on whitespace like bufio.ScanWords while tracking which
// line each record starts on
func (r *FileReader) scanRecords(data []byte, atEOF bool) (int, []byte, error) {
	advance, token, err := bufio.ScanWords(data, atEOF)
	if err != nil {
		return advance, token, err
	}
	if token != nil {
		start := cap(data) - cap(token)
		r.recordLine = r.newlines + bytes.Count(data[:start], newline) + 1
	}
	r.newlines += bytes.Count(data[:advance], newline)
	return advance, token, nil
}

var newline = []byte{'\n'}

// OpenFile opens path for reading. The caller must Close the reader.
func OpenFile(path string) (*FileReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open updates file: %w", err)
	}
	r := NewFileReader(f)
	r.closer = f
	return r, nil
}

func (r *FileReader) Next() (models.Update, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return models.Update{}, fmt.Errorf("failed to read updates: %w", err)
		}
		return models.Update{}, io.EOF
	}

	update, err := ParseUpdate(r.scanner.Text())
	if err != nil {
		return models.Update{}, fmt.Errorf("line %d: %w", r.recordLine, err)
	}
	return update, nil
}

// Close closes the underlying file, if the reader owns one
func (r *FileReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// ParseUpdate parses a single SYMBOL,TIMESTAMP,PRICE record. Timestamps
// are read as UTC.
func ParseUpdate(record string) (models.Update, error) {
	parts := strings.Split(record, ",")
	if len(parts) != 3 {
		return models.Update{}, fmt.Errorf("malformed record %q: expected 3 fields, got %d", record, len(parts))
	}

	symbol := strings.TrimSpace(parts[0])
	if symbol == "" {
		return models.Update{}, fmt.Errorf("malformed record %q: %w", record, models.ErrInvalidSymbol)
	}

	timestamp, err := time.Parse(TimestampLayout, parts[1])
	if err != nil {
		return models.Update{}, fmt.Errorf("malformed record %q: invalid timestamp: %w", record, err)
	}

	price, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return models.Update{}, fmt.Errorf("malformed record %q: invalid price: %w", record, err)
	}

	return models.Update{Symbol: symbol, Timestamp: timestamp, Price: price}, nil
}
