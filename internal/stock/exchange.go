package stock

import (
	"fmt"
	"sort"
	"time"

	"github.com/mohamedkhairy/stock-alerter/internal/models"
	"github.com/mohamedkhairy/stock-alerter/pkg/logger"
)

// Exchange is the set of instruments the alerter watches, keyed by symbol
type Exchange struct {
	stocks map[string]*Stock
}

// NewExchange creates an exchange with one stock per symbol. Duplicate
// symbols share a single stock.
func NewExchange(symbols []string, opts ...Option) *Exchange {
	ex := &Exchange{
		stocks: make(map[string]*Stock, len(symbols)),
	}
	for _, symbol := range symbols {
		if _, exists := ex.stocks[symbol]; !exists {
			ex.stocks[symbol] = New(symbol, opts...)
		}
	}
	return ex
}

// Add registers a stock, replacing any existing stock with the same symbol
func (e *Exchange) Add(s *Stock) {
	e.stocks[s.Symbol] = s
}

// Get returns the stock for symbol
func (e *Exchange) Get(symbol string) (*Stock, error) {
	s, exists := e.stocks[symbol]
	if !exists {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownSymbol, symbol)
	}
	return s, nil
}

// Update applies a price update to the stock for symbol
func (e *Exchange) Update(symbol string, timestamp time.Time, price float64) error {
	s, err := e.Get(symbol)
	if err != nil {
		logger.StockUpdateErrorsTotal.WithLabelValues("unknown_symbol").Inc()
		return err
	}
	return s.Update(timestamp, price)
}

// Symbols returns the exchange's symbols in sorted order
func (e *Exchange) Symbols() []string {
	symbols := make([]string, 0, len(e.stocks))
	for symbol := range e.stocks {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Len returns the number of stocks
func (e *Exchange) Len() int {
	return len(e.stocks)
}
