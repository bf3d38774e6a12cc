package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related fetch errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeRateLimit represents rate limiting by the remote side
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeParsing represents HTML or embedded data parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeValidation represents price validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeOutOfStock represents products detected as unavailable
	ErrorTypeOutOfStock ErrorType = "out_of_stock"
	// ErrorTypeNoCandidate represents pages where no price was found
	ErrorTypeNoCandidate ErrorType = "no_candidate"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScoutError represents a pipeline error tagged with its origin
type ScoutError struct {
	Type    ErrorType
	Vendor  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Vendor, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Vendor, e.Message)
}

// Unwrap returns the underlying error
func (e *ScoutError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if another fetch attempt could succeed
func (e *ScoutError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNetwork:
		return true
	case ErrorTypeRateLimit:
		return false
	default:
		return false
	}
}

// New creates a new ScoutError
func New(errType ErrorType, vendor, message string, err error) *ScoutError {
	return &ScoutError{
		Type:    errType,
		Vendor:  vendor,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewFetch creates a new network fetch error
func NewFetch(vendor, message string, err error) *ScoutError {
	return New(ErrorTypeNetwork, vendor, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(vendor string, duration time.Duration) *ScoutError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, vendor, message, nil)
}

// NewParsing creates a new parsing error
func NewParsing(vendor, message string, err error) *ScoutError {
	return New(ErrorTypeParsing, vendor, message, err)
}

// NewValidation creates a new validation error
func NewValidation(vendor, message string) *ScoutError {
	return New(ErrorTypeValidation, vendor, message, nil)
}

// NewOutOfStock creates a new out-of-stock error
func NewOutOfStock(vendor string) *ScoutError {
	return New(ErrorTypeOutOfStock, vendor, "product is out of stock", nil)
}

// NewNoCandidate creates a new no-candidate error
func NewNoCandidate(vendor string) *ScoutError {
	return New(ErrorTypeNoCandidate, vendor, "no price found on page", nil)
}

// NewPublisher creates a new publisher error
func NewPublisher(vendor, message string, err error) *ScoutError {
	return New(ErrorTypePublisher, vendor, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScoutError {
	return New(ErrorTypeConfiguration, "", message, err)
}
