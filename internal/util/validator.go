package util

import (
	"fmt"
	"time"
)

// ValidateAmount checks a money amount is positive and below the cap.
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= 100000000 { // 10 crore cap for a single entry
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ValidateDate checks a date string is zero-padded YYYY-MM-DD. All date
// comparisons in the system are lexicographic and depend on this format.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	if t.Format("2006-01-02") != dateStr {
		return fmt.Errorf("date must be zero-padded YYYY-MM-DD")
	}
	return nil
}

// ValidateCategory checks a cash-out category.
func ValidateCategory(category string) error {
	switch category {
	case "material", "labor", "service":
		return nil
	}
	return fmt.Errorf("category must be material, labor or service, got %q", category)
}
