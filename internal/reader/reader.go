// Package reader supplies price updates to the processor.
package reader

import (
	"io"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
)

// Reader yields updates in input order. Next returns io.EOF once drained.
type Reader interface {
	Next() (models.Update, error)
}

// ListReader reads updates from an in-memory slice
type ListReader struct {
	updates []models.Update
	pos     int
}

// NewListReader creates a reader over updates
func NewListReader(updates []models.Update) *ListReader {
	return &ListReader{updates: updates}
}

func (r *ListReader) Next() (models.Update, error) {
	if r.pos >= len(r.updates) {
		return models.Update{}, io.EOF
	}
	update := r.updates[r.pos]
	r.pos++
	return update, nil
}
