// README: Translation adapter (LibreTranslate translate/detect/languages) with phrasebook fallback.
package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"journeo/internal/types"
)

type Service struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewService accepts either the LibreTranslate root or its /translate endpoint.
func NewService(baseURL string, timeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	baseURL = strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/translate")
	return &Service{baseURL: baseURL, client: &http.Client{Timeout: timeout}, logger: logger}
}

// Translate translates text into target. source may be empty or "auto".
func (s *Service) Translate(ctx context.Context, text, target, source string) types.Result[Translation] {
	if source == "" {
		source = "auto"
	}
	var raw translateResponse
	err := s.do(ctx, http.MethodPost, "/translate", translateRequest{Q: text, Source: source, Target: target, Format: "text"}, &raw)
	if err == nil && raw.TranslatedText == "" && strings.TrimSpace(text) != "" {
		err = fmt.Errorf("translation: empty translatedText")
	}
	if err != nil {
		s.logger.Warn("translation fallback", "target", target, "error", err)
		return types.Fallback(MockTranslate(text, target, source), err)
	}
	t := Translation{
		OriginalText:   text,
		TranslatedText: raw.TranslatedText,
		SourceLanguage: source,
		TargetLanguage: target,
		Translated:     true,
	}
	if raw.DetectedLanguage != nil {
		t.SourceLanguage = raw.DetectedLanguage.Language
		t.Confidence = raw.DetectedLanguage.Confidence
	}
	return types.Live(t)
}

func (s *Service) Detect(ctx context.Context, text string) types.Result[Detection] {
	var raw detectResponse
	err := s.do(ctx, http.MethodPost, "/detect", detectRequest{Q: text}, &raw)
	if err == nil && len(raw) == 0 {
		err = fmt.Errorf("translation: empty detect response")
	}
	if err != nil {
		s.logger.Warn("detect fallback", "error", err)
		return types.Fallback(MockDetect(text), err)
	}
	return types.Live(Detection{Text: text, DetectedLanguage: raw[0].Language, Confidence: raw[0].Confidence})
}

func (s *Service) Languages(ctx context.Context) types.Result[[]Language] {
	var raw []Language
	if err := s.do(ctx, http.MethodGet, "/languages", nil, &raw); err != nil {
		s.logger.Warn("languages fallback", "error", err)
		return types.Fallback(MockLanguages(), err)
	}
	return types.Live(raw)
}

func (s *Service) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("translation: marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("translation: build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("translation: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("translation: unexpected status %d", resp.StatusCode)
	}
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("translation: read response: %w", err)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("translation: unmarshal response: %w", err)
	}
	return nil
}
