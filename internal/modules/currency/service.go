// README: Currency adapter (exchangerate.host) with mock fallback.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"journeo/internal/types"
)

type Service struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewService(baseURL string, timeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{baseURL: strings.TrimRight(baseURL, "/"), client: &http.Client{Timeout: timeout}, logger: logger}
}

// Rates returns latest rates relative to base (default USD).
func (s *Service) Rates(ctx context.Context, base string) types.Result[Rates] {
	base = normalize(base)
	var raw upstreamRates
	if err := s.get(ctx, "/latest", url.Values{"base": {base}}, &raw); err != nil {
		s.logger.Warn("currency rates fallback", "base", base, "error", err)
		return types.Fallback(MockRates(base), err)
	}
	return types.Live(Rates{BaseCurrency: base, Date: raw.Date, Rates: raw.Rates, Timestamp: raw.Timestamp})
}

func (s *Service) Convert(ctx context.Context, from, to string, amount float64) types.Result[Conversion] {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	q := url.Values{
		"from":   {from},
		"to":     {to},
		"amount": {strconv.FormatFloat(amount, 'f', -1, 64)},
	}
	var raw upstreamConvert
	if err := s.get(ctx, "/convert", q, &raw); err != nil {
		s.logger.Warn("currency convert fallback", "from", from, "to", to, "error", err)
		return types.Fallback(MockConversion(from, to, amount), err)
	}
	return types.Live(Conversion{
		FromCurrency:    from,
		ToCurrency:      to,
		Amount:          amount,
		ConvertedAmount: raw.Result,
		Rate:            raw.Info.Rate,
		Timestamp:       raw.Info.Timestamp,
	})
}

// Historical returns rates for a YYYY-MM-DD date. The mock ignores the date.
func (s *Service) Historical(ctx context.Context, date, base string) types.Result[Rates] {
	base = normalize(base)
	var raw upstreamRates
	if err := s.get(ctx, "/"+url.PathEscape(date), url.Values{"base": {base}}, &raw); err != nil {
		s.logger.Warn("currency historical fallback", "date", date, "base", base, "error", err)
		return types.Fallback(MockRates(base), err)
	}
	return types.Live(Rates{BaseCurrency: base, Date: raw.Date, Rates: raw.Rates})
}

func (s *Service) Currencies(ctx context.Context) types.Result[map[string]Symbol] {
	var raw upstreamSymbols
	if err := s.get(ctx, "/symbols", nil, &raw); err != nil {
		s.logger.Warn("currency symbols fallback", "error", err)
		return types.Fallback(MockSymbols(), err)
	}
	return types.Live(raw.Symbols)
}

type upstreamBody interface {
	validate() error
}

func (s *Service) get(ctx context.Context, path string, q url.Values, out upstreamBody) error {
	u := s.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("currency: build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("currency: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("currency: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("currency: read response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("currency: unmarshal response: %w", err)
	}
	return out.validate()
}

func normalize(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "USD"
	}
	return code
}
