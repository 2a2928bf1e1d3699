// README: Currency rate, conversion and symbol types.
package currency

import (
	"encoding/json"
	"errors"
	"fmt"
)

type Rates struct {
	BaseCurrency string             `json:"base_currency"`
	Date         string             `json:"date"`
	Rates        map[string]float64 `json:"rates"`
	Timestamp    *int64             `json:"timestamp,omitempty"`
}

type Conversion struct {
	FromCurrency    string  `json:"from_currency"`
	ToCurrency      string  `json:"to_currency"`
	Amount          float64 `json:"amount"`
	ConvertedAmount float64 `json:"converted_amount"`
	Rate            float64 `json:"rate"`
	Timestamp       int64   `json:"timestamp"`
}

type Symbol struct {
	Description string `json:"description"`
	Code        string `json:"code"`
}

// upstreamStatus is the envelope exchangerate.host sends with HTTP 200 even on failure.
type upstreamStatus struct {
	Success *bool           `json:"success"`
	Error   json.RawMessage `json:"error"`
}

func (s upstreamStatus) err() error {
	if (s.Success != nil && !*s.Success) || (len(s.Error) > 0 && string(s.Error) != "null") {
		return fmt.Errorf("currency: upstream error %s", s.Error)
	}
	return nil
}

type upstreamRates struct {
	upstreamStatus
	Date      string             `json:"date"`
	Rates     map[string]float64 `json:"rates"`
	Timestamp *int64             `json:"timestamp"`
}

type upstreamConvert struct {
	upstreamStatus
	Result float64 `json:"result"`
	Info   struct {
		Rate      float64 `json:"rate"`
		Timestamp int64   `json:"timestamp"`
	} `json:"info"`
}

type upstreamSymbols struct {
	upstreamStatus
	Symbols map[string]Symbol `json:"symbols"`
}

func (r upstreamRates) validate() error {
	if err := r.err(); err != nil {
		return err
	}
	if len(r.Rates) == 0 {
		return errors.New("currency: response has no rates")
	}
	return nil
}

func (r upstreamConvert) validate() error {
	if err := r.err(); err != nil {
		return err
	}
	if r.Info.Rate == 0 {
		return errors.New("currency: response has no rate")
	}
	return nil
}

func (r upstreamSymbols) validate() error {
	if err := r.err(); err != nil {
		return err
	}
	if len(r.Symbols) == 0 {
		return errors.New("currency: response has no symbols")
	}
	return nil
}
