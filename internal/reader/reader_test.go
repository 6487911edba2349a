package reader

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, r Reader) []models.Update {
	t.Helper()
	var updates []models.Update
	for {
		update, err := r.Next()
		if err == io.EOF {
			return updates
		}
		require.NoError(t, err)
		updates = append(updates, update)
	}
}

func TestListReader(t *testing.T) {
	ts := time.Date(2014, 2, 10, 0, 0, 0, 0, time.UTC)
	updates := []models.Update{
		{Symbol: "GOOG", Timestamp: ts, Price: 10},
		{Symbol: "AAPL", Timestamp: ts, Price: 8},
	}

	r := NewListReader(updates)
	assert.Equal(t, updates, readAll(t, r))

	_, err := r.Next()
	assert.Equal(t, io.EOF, err, "drained reader keeps returning EOF")
}

func TestListReader_Empty(t *testing.T) {
	_, err := NewListReader(nil).Next()
	assert.Equal(t, io.EOF, err)
}

func TestFileReader_ParsesRecords(t *testing.T) {
	input := "GOOG,2014-02-11T14:10:22.13,10\n" +
		"\n" +
		"AAPL,2014-02-11T00:00:00.0,8 MSFT,2014-02-12T09:30:00,11.5\n"

	updates := readAll(t, NewFileReader(strings.NewReader(input)))

	require.Len(t, updates, 3)
	assert.Equal(t, models.Update{
		Symbol:    "GOOG",
		Timestamp: time.Date(2014, 2, 11, 14, 10, 22, 130000000, time.UTC),
		Price:     10,
	}, updates[0])
	assert.Equal(t, "AAPL", updates[1].Symbol)
	assert.Equal(t, time.Date(2014, 2, 11, 0, 0, 0, 0, time.UTC), updates[1].Timestamp)
	assert.Equal(t, "MSFT", updates[2].Symbol)
	assert.Equal(t, 11.5, updates[2].Price)
}

func TestFileReader_MalformedLineNamesLine(t *testing.T) {
	input := "GOOG,2014-02-11T14:10:22.13,10\n\nGOOG,yesterday,10\n"
	r := NewFileReader(strings.NewReader(input))

	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestFileReader_LongSingleLine(t *testing.T) {
	const records = 3000
	input := strings.Repeat("GOOG,2014-02-11T14:10:22.130000,5 ", records)
	require.Greater(t, len(input), 64*1024)

	updates := readAll(t, NewFileReader(strings.NewReader(input)))

	require.Len(t, updates, records)
	assert.Equal(t, "GOOG", updates[records-1].Symbol)
	assert.Equal(t, 5.0, updates[records-1].Price)
}

func TestFileReader_LineNumbersAcrossSharedLines(t *testing.T) {
	input := "GOOG,2014-02-11T14:10:22.13,10 AAPL,2014-02-11T14:10:22.13,8\n" +
		"   \n" +
		"  GOOG,2014-02-12T00:00:00,11   GOOG,bad,10\n"
	r := NewFileReader(strings.NewReader(input))

	for i := 0; i < 3; i++ {
		_, err := r.Next()
		require.NoError(t, err)
	}

	_, err := r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestParseUpdate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		record string
	}{
		{"too few fields", "GOOG,2014-02-11T14:10:22.13"},
		{"too many fields", "GOOG,2014-02-11T14:10:22.13,10,1"},
		{"empty symbol", ",2014-02-11T14:10:22.13,10"},
		{"bad timestamp", "GOOG,2014-02-11,10"},
		{"bad price", "GOOG,2014-02-11T14:10:22.13,ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUpdate(tt.record)
			assert.Error(t, err)
		})
	}
}

func TestParseUpdate_NegativePriceIsParsed(t *testing.T) {
	update, err := ParseUpdate("GOOG,2014-02-11T14:10:22.13,-1")
	require.NoError(t, err)
	assert.Equal(t, -1.0, update.Price)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "updates.txt")
	require.NoError(t, os.WriteFile(path, []byte("GOOG,2014-02-11T14:10:22.13,10\n"), 0o600))

	r, err := OpenFile(path)
	require.NoError(t, err)
	defer r.Close()

	updates := readAll(t, r)
	require.Len(t, updates, 1)
	assert.Equal(t, "GOOG", updates[0].Symbol)
}

func TestOpenFile_Missing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
