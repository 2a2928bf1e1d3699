// README: Translation adapter tests (live, phrasebook fallback, detect, languages).
package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTranslateLiveKeepsConfidenceSeparate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req translateRequest
		if r.URL.Path != "/translate" || json.NewDecoder(r.Body).Decode(&req) != nil || req.Target != "fr" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"translatedText":"Bonjour","detectedLanguage":{"language":"en","confidence":92.0}}`))
	}))
	defer srv.Close()

	res := NewService(srv.URL+"/translate", time.Second, nil).Translate(context.Background(), "Hello", "fr", "")

	require.False(t, res.Degraded)
	require.True(t, res.Value.Translated)
	require.Equal(t, "Bonjour", res.Value.TranslatedText)
	require.Equal(t, "en", res.Value.SourceLanguage)
	require.InDelta(t, 92.0, res.Value.Confidence, 1e-9)
}

func TestTranslateFallbackPhrasebook(t *testing.T) {
	svc := NewService("http://127.0.0.1:1", 200*time.Millisecond, nil)

	res := svc.Translate(context.Background(), "Day 1: Morning visit to the museum", "es", "auto")

	require.True(t, res.Degraded)
	require.True(t, res.Value.Translated)
	require.Equal(t, "Día 1: Mañana visita to the museo", res.Value.TranslatedText)
}

func TestTranslateFallbackUnsupportedTarget(t *testing.T) {
	svc := NewService("http://127.0.0.1:1", 200*time.Millisecond, nil)

	res := svc.Translate(context.Background(), "Day 1", "ja", "")

	require.True(t, res.Degraded)
	require.False(t, res.Value.Translated)
	require.Equal(t, "Day 1", res.Value.TranslatedText)
}

func TestMockTranslateDoesNotMatchInsideWords(t *testing.T) {
	got := MockTranslate("Daytrip holiday", "fr", "en")

	require.Equal(t, "Daytrip holiday", got.TranslatedText)
}

func TestDetect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"language":"de","confidence":88}]`))
	}))
	defer srv.Close()

	live := NewService(srv.URL, time.Second, nil).Detect(context.Background(), "Guten Tag")
	require.False(t, live.Degraded)
	require.Equal(t, "de", live.Value.DetectedLanguage)

	srv.Close()
	mock := NewService(srv.URL, time.Second, nil).Detect(context.Background(), "Hola, bienvenido")
	require.True(t, mock.Degraded)
	require.Equal(t, "es", mock.Value.DetectedLanguage)
	require.InDelta(t, 0.8, mock.Value.Confidence, 1e-9)
}

func TestLanguagesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	res := NewService(srv.URL, time.Second, nil).Languages(context.Background())

	require.True(t, res.Degraded)
	require.Len(t, res.Value, 10)
	require.Equal(t, "zh", res.Value[9].Code)
}
