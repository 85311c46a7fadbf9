package utils

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

func ProcessValidationErrors(err error) map[string]string {

	validationErrors := err.(validator.ValidationErrors)

	errorResponse := make(map[string]string)

	for _, ve := range validationErrors {
		errorResponse[ve.Field()] = ve.Tag()
	}

	return errorResponse
}

// DisplayAmount rounds for API output only. Accumulation always happens at
// full precision; see the allocator.
func DisplayAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// GenerateSku returns a short random SKU for products created without one.
func GenerateSku() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// TruncateToDate drops the time-of-day component, keeping UTC date semantics
// consistent between reports and expenses.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeSkipLimit clamps pagination inputs (zero-based offset).
func NormalizeSkipLimit(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return skip, limit
}

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}
