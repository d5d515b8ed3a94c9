package payment

import (
	"errors"
	"strings"
	"time"
)

// Card represents entered card details prior to tokenization. Card
// data never travels to the storefront backend; it only goes to the
// processor in exchange for a payment method token.
type Card struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

// Validate performs the local checks the processor's own form
// validation would run, so obviously bad input fails before any
// network call
func (c *Card) Validate() error {
	number := strings.ReplaceAll(c.Number, " ", "")
	if len(number) < 12 || len(number) > 19 {
		return errors.New("card number length is invalid")
	}

	if !luhnValid(number) {
		return errors.New("card number is invalid")
	}

	if c.ExpMonth < 1 || c.ExpMonth > 12 {
		return errors.New("card expiry month is invalid")
	}

	if c.isExpired(time.Now()) {
		return errors.New("card has expired")
	}

	if len(c.CVC) < 3 || len(c.CVC) > 4 {
		return errors.New("card security code is invalid")
	}
	for _, r := range c.CVC {
		if r < '0' || r > '9' {
			return errors.New("card security code is invalid")
		}
	}

	return nil
}

// isExpired returns true if the card's expiry is before the current month
func (c *Card) isExpired(now time.Time) bool {
	year := c.ExpYear
	if year < 100 {
		year += 2000
	}

	if year < now.Year() {
		return true
	}
	return year == now.Year() && c.ExpMonth < int(now.Month())
}

// luhnValid runs the Luhn checksum over a digit string
func luhnValid(number string) bool {
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		r := number[i]
		if r < '0' || r > '9' {
			return false
		}
		digit := int(r - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}
