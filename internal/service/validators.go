package service

import (
	"fmt"

	"github.com/bushboy/bookingswap/internal/models"
)

// ValidateAmount checks if amount is valid (positive)
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("invalid amount: must be greater than 0")
	}

	return nil
}

// ValidateCurrency checks that the currency is a three-letter uppercase code
func ValidateCurrency(currency string) error {
	if len(currency) != 3 {
		return fmt.Errorf("invalid currency: must be a 3-letter ISO code")
	}

	for _, r := range currency {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("invalid currency: must be uppercase letters")
		}
	}

	return nil
}

// ValidatePage checks pagination bounds before they reach the repository
func ValidatePage(page models.Page) error {
	if page.Limit < 0 {
		return fmt.Errorf("invalid limit: must not be negative")
	}
	if page.Offset < 0 {
		return fmt.Errorf("invalid offset: must not be negative")
	}

	return nil
}
