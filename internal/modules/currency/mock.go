package currency

import "strings"

const (
	mockDate      = "2024-01-01"
	mockTimestamp = int64(1640995200)
)

// mockTable holds units per USD.
var mockTable = map[string]float64{
	"USD": 1.0,
	"EUR": 0.85,
	"GBP": 0.73,
	"JPY": 110.0,
	"CAD": 1.25,
	"AUD": 1.35,
	"CHF": 0.92,
	"CNY": 6.45,
	"INR": 74.5,
	"BRL": 5.2,
}

var mockNames = map[string]string{
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "British Pound",
	"JPY": "Japanese Yen",
	"CAD": "Canadian Dollar",
	"AUD": "Australian Dollar",
	"CHF": "Swiss Franc",
	"CNY": "Chinese Yuan",
	"INR": "Indian Rupee",
	"BRL": "Brazilian Real",
}

func mockRate(code string) float64 {
	if r, ok := mockTable[code]; ok {
		return r
	}
	return 1.0
}

// MockRates returns the mock table re-based on base, excluding base itself.
func MockRates(base string) Rates {
	base = strings.ToUpper(base)
	baseRate := mockRate(base)
	rates := make(map[string]float64, len(mockTable))
	for code, r := range mockTable {
		if code == base {
			continue
		}
		rates[code] = r / baseRate
	}
	ts := mockTimestamp
	return Rates{BaseCurrency: base, Date: mockDate, Rates: rates, Timestamp: &ts}
}

func MockConversion(from, to string, amount float64) Conversion {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	rate := mockRate(to) / mockRate(from)
	return Conversion{
		FromCurrency:    from,
		ToCurrency:      to,
		Amount:          amount,
		ConvertedAmount: amount * rate,
		Rate:            rate,
		Timestamp:       mockTimestamp,
	}
}

func MockSymbols() map[string]Symbol {
	out := make(map[string]Symbol, len(mockNames))
	for code, name := range mockNames {
		out[code] = Symbol{Description: name, Code: code}
	}
	return out
}
