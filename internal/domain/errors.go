package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every input validation failure.
var ErrValidation = errors.New("validation failed")

var (
	// Not found errors
	ErrClientNotFound    = errors.New("client not found")
	ErrReceiptNotFound   = errors.New("receipt not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrTrashItemNotFound = errors.New("trash item not found")

	// Amount errors
	ErrInvalidAmount          = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrNegativeAmount         = fmt.Errorf("%w: amount must not be negative", ErrValidation)
	ErrNonPositiveAmount      = fmt.Errorf("%w: amount must be positive", ErrValidation)
	ErrAmountTooLarge         = fmt.Errorf("%w: amount exceeds maximum allowed", ErrValidation)
	ErrAmountPrecisionTooHigh = fmt.Errorf("%w: amount has more than two decimal places", ErrValidation)

	// Field errors
	ErrInvalidDate       = fmt.Errorf("%w: invalid date", ErrValidation)
	ErrInvalidCity       = fmt.Errorf("%w: invalid city", ErrValidation)
	ErrInvalidMethod     = fmt.Errorf("%w: invalid payment method", ErrValidation)
	ErrInvalidClientName = fmt.Errorf("%w: invalid client name", ErrValidation)
	ErrMissingClientID   = fmt.Errorf("%w: client id is required", ErrValidation)
	ErrMissingDriver     = fmt.Errorf("%w: driver is required", ErrValidation)
	ErrMissingCar        = fmt.Errorf("%w: car is required", ErrValidation)
	ErrFieldTooLong      = fmt.Errorf("%w: field exceeds maximum length", ErrValidation)

	// Filter errors
	ErrInvalidTransactionKind = fmt.Errorf("%w: invalid transaction kind", ErrValidation)
	ErrInvalidDateRange       = fmt.Errorf("%w: invalid date range", ErrValidation)

	// Trash errors
	ErrUnknownTrashItemType = errors.New("unknown trash item type")
)
