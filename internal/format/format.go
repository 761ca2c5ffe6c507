// Package format turns raw tour and booking values into display strings.
// Every function is pure.
package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pkordes/tourdesk/internal/domain"
)

const (
	contactForPricing = "Contact for pricing"
	contactUs         = "Contact us"
	flexible          = "Flexible"
	custom            = "Custom"
)

var usd = message.NewPrinter(language.AmericanEnglish)

// Currency formats an amount as US dollars with two decimals.
func Currency(amount float64) string {
	if amount < 0 {
		return "-" + usd.Sprintf("$%.2f", -amount)
	}
	return usd.Sprintf("$%.2f", amount)
}

// Price formats a tour price: currency when numeric, the literal value when
// free text, "Contact for pricing" when absent.
func Price(p domain.Price) string {
	switch {
	case p.Numeric:
		return Currency(p.Amount)
	case p.Raw != "":
		return p.Raw
	default:
		return contactForPricing
	}
}

// Total is price × guests as currency, or "Contact us" when the price is not
// a number.
func Total(p domain.Price, guests int) string {
	if !p.Numeric {
		return contactUs
	}
	return Currency(TotalAmount(p, guests))
}

// TotalAmount is the numeric booking total. Non-numeric prices total zero.
func TotalAmount(p domain.Price, guests int) float64 {
	if !p.Numeric {
		return 0
	}
	return p.Amount * float64(guests)
}

// Capacity is "N guests", or "Flexible" when unset.
func Capacity(maxCapacity int) string {
	switch {
	case maxCapacity <= 0:
		return flexible
	case maxCapacity == 1:
		return "1 guest"
	default:
		return fmt.Sprintf("%d guests", maxCapacity)
	}
}

// Duration renders hours. Whole multiples of a day are shown in days.
func Duration(hours *int) string {
	if hours == nil || *hours <= 0 {
		return custom
	}
	h := *hours
	if h >= 24 && h%24 == 0 {
		days := h / 24
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	if h == 1 {
		return "1 hr"
	}
	return fmt.Sprintf("%d hrs", h)
}

// Date renders a timestamp for detail views. The zero time renders as
// "Anytime".
func Date(t time.Time) string {
	if t.IsZero() {
		return "Anytime"
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}

// DateTimeInput renders t the way a datetime-local input holds it.
func DateTimeInput(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02T15:04")
}

// Plural picks the singular or plural noun for n.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
