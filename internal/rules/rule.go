package rules

import (
	"sort"

	"github.com/mohamedkhairy/stock-alerter/internal/stock"
	"github.com/mohamedkhairy/stock-alerter/pkg/indicator"
)

// PriceRule matches when the stock's price satisfies Condition. It never
// matches a symbol missing from the exchange or a stock without a price.
type PriceRule struct {
	Symbol    string
	Condition func(s *stock.Stock) bool
}

// NewPriceRule creates a price rule
func NewPriceRule(symbol string, condition func(s *stock.Stock) bool) *PriceRule {
	return &PriceRule{Symbol: symbol, Condition: condition}
}

func (r *PriceRule) Matches(ex *stock.Exchange) bool {
	s, err := ex.Get(r.Symbol)
	if err != nil {
		return false
	}
	if _, ok := s.Price(); !ok {
		return false
	}
	return r.Condition(s)
}

func (r *PriceRule) DependsOn() []string {
	return []string{r.Symbol}
}

// TrendRule matches when the stock's last three prices are strictly increasing
type TrendRule struct {
	Symbol string
}

// NewTrendRule creates a trend rule
func NewTrendRule(symbol string) *TrendRule {
	return &TrendRule{Symbol: symbol}
}

func (r *TrendRule) Matches(ex *stock.Exchange) bool {
	s, err := ex.Get(r.Symbol)
	if err != nil {
		return false
	}
	return s.IsIncreasingTrend()
}

func (r *TrendRule) DependsOn() []string {
	return []string{r.Symbol}
}

// CrossoverRule matches when the stock's moving average crossover signal,
// evaluated on the day of its latest observation, equals Signal
type CrossoverRule struct {
	Symbol string
	Signal indicator.Signal
}

// NewCrossoverRule creates a crossover rule
func NewCrossoverRule(symbol string, signal indicator.Signal) *CrossoverRule {
	return &CrossoverRule{Symbol: symbol, Signal: signal}
}

func (r *CrossoverRule) Matches(ex *stock.Exchange) bool {
	s, err := ex.Get(r.Symbol)
	if err != nil {
		return false
	}
	onDate, ok := s.LastUpdate()
	if !ok {
		return false
	}
	return s.CrossoverSignal(onDate) == r.Signal
}

func (r *CrossoverRule) DependsOn() []string {
	return []string{r.Symbol}
}

// AndRule matches when every component rule matches
type AndRule struct {
	Rules []Rule
}

// NewAndRule creates a conjunction of rules
func NewAndRule(rules ...Rule) *AndRule {
	return &AndRule{Rules: rules}
}

func (r *AndRule) Matches(ex *stock.Exchange) bool {
	for _, rule := range r.Rules {
		if !rule.Matches(ex) {
			return false
		}
	}
	return true
}

func (r *AndRule) DependsOn() []string {
	seen := make(map[string]struct{})
	for _, rule := range r.Rules {
		for _, symbol := range rule.DependsOn() {
			seen[symbol] = struct{}{}
		}
	}

	symbols := make([]string, 0, len(seen))
	for symbol := range seen {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// PriceCompare returns a price condition comparing the stock's price with
// value using op (one of >, <, >=, <=, ==, !=)
func PriceCompare(op string, value float64) func(s *stock.Stock) bool {
	return func(s *stock.Stock) bool {
		price, ok := s.Price()
		if !ok {
			return false
		}
		return compare(price, op, value)
	}
}

func compare(left float64, op string, right float64) bool {
	switch op {
	case ">":
		return left > right
	case "<":
		return left < right
	case ">=":
		return left >= right
	case "<=":
		return left <= right
	case "==":
		return left == right
	case "!=":
		return left != right
	default:
		return false
	}
}
