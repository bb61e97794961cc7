// Package money formats decimal amounts in a single display currency.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const DefaultCurrency = "GBP"

var localeForCurrency = map[string]language.Tag{
	"GBP": language.BritishEnglish,
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"CAD": language.CanadianFrench,
	"AUD": language.MustParse("en-AU"),
	"CHF": language.German,
	"SEK": language.Swedish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"JPY": language.Japanese,
	"INR": language.MustParse("en-IN"),
}

// symbolFirst lists currencies whose symbol precedes the amount. x/text does
// not expose CLDR symbol placement.
var symbolFirst = map[string]bool{
	"GBP": true, "USD": true, "JPY": true, "CAD": true, "AUD": true, "INR": true,
}

var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
}

type Formatter struct {
	code    string
	symbol  string
	prefix  bool
	printer *message.Printer
}

// New returns a formatter for an ISO 4217 code. Unknown codes are printed
// after the amount with English number formatting.
func New(code string) Formatter {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}

	tag, ok := localeForCurrency[code]
	if !ok {
		tag = language.English
	}
	printer := message.NewPrinter(tag)

	f := Formatter{code: code, printer: printer, prefix: symbolFirst[code]}
	switch unit, err := currency.ParseISO(code); {
	case err != nil:
		f.symbol = code
		f.prefix = false
	case symbolOverrides[code] != "":
		f.symbol = symbolOverrides[code]
	default:
		f.symbol = printer.Sprint(currency.NarrowSymbol(unit))
	}

	return f
}

func (f Formatter) Code() string {
	return f.code
}

// Format renders amount with two fraction digits and the currency symbol. The
// zero Formatter formats in DefaultCurrency.
func (f Formatter) Format(amount decimal.Decimal) string {
	if f.printer == nil {
		f = New(DefaultCurrency)
	}

	value := amount.Round(2).InexactFloat64()
	formatted := f.printer.Sprint(number.Decimal(value, number.MinFractionDigits(2), number.MaxFractionDigits(2)))

	if f.prefix {
		return f.symbol + formatted
	}
	return formatted + " " + f.symbol
}
