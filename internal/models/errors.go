package models

import "errors"

var (
	ErrNegativePrice        = errors.New("price should not be negative")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrUnknownSymbol        = errors.New("unknown symbol")
	ErrNotEnoughData        = errors.New("not enough data")
	ErrInvalidSymbol        = errors.New("invalid symbol")
	ErrInvalidTimestamp     = errors.New("invalid timestamp")
	ErrInvalidRuleID        = errors.New("invalid rule ID")
	ErrInvalidRuleName      = errors.New("invalid rule name")
	ErrNoConditions         = errors.New("rule must have at least one condition")
	ErrInvalidConditionType = errors.New("invalid condition type")
	ErrInvalidOperator      = errors.New("invalid operator")
	ErrInvalidSignal        = errors.New("invalid crossover signal")
	ErrInvalidActionType    = errors.New("invalid action type")
	ErrMissingRecipient     = errors.New("email action requires a recipient")
	ErrInvalidRecipient     = errors.New("email recipient must not contain line breaks")
)
