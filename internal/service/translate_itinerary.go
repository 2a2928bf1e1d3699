package service

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"

	"journeo/internal/modules/translation"
	"journeo/internal/types"
)

const (
	paragraphSep         = "\n\n"
	paragraphConcurrency = 4
)

// Translator is the subset of the translation adapter the planner needs.
type Translator interface {
	Translate(ctx context.Context, text, target, source string) types.Result[translation.Translation]
}

// ItineraryTranslation is the joined result of a paragraph-wise translation.
type ItineraryTranslation struct {
	OriginalItinerary   string `json:"original_itinerary"`
	TranslatedItinerary string `json:"translated_itinerary"`
	TargetLanguage      string `json:"target_language"`
	Success             bool   `json:"success"`
	// Degraded is set when any paragraph came from the fallback phrasebook.
	Degraded bool `json:"degraded"`
	// Untranslated counts non-empty paragraphs kept in the original language.
	Untranslated int `json:"untranslated"`
}

// TranslateItinerary splits text on blank lines, translates every non-empty
// paragraph concurrently and rejoins them in the original order. A paragraph
// that cannot be translated keeps its original text. Success is true when at
// least one paragraph was translated.
func TranslateItinerary(ctx context.Context, tr Translator, text, target string, logger *slog.Logger) ItineraryTranslation {
	if logger == nil {
		logger = slog.Default()
	}
	paragraphs := strings.Split(text, paragraphSep)
	out := make([]string, len(paragraphs))
	results := make([]*types.Result[translation.Translation], len(paragraphs))

	var g errgroup.Group
	g.SetLimit(paragraphConcurrency)
	for i, p := range paragraphs {
		unit := strings.TrimSpace(p)
		if unit == "" {
			out[i] = p
			continue
		}
		g.Go(func() error {
			res := tr.Translate(ctx, unit, target, "auto")
			results[i] = &res
			return nil
		})
	}
	_ = g.Wait()

	tx := ItineraryTranslation{OriginalItinerary: text, TargetLanguage: target}
	var translated int
	for i, res := range results {
		if res == nil {
			continue
		}
		if res.Degraded {
			tx.Degraded = true
		}
		if res.Value.Translated {
			out[i] = rewrap(paragraphs[i], res.Value.TranslatedText)
			translated++
		} else {
			out[i] = paragraphs[i]
			tx.Untranslated++
		}
	}
	tx.Success = translated > 0
	if tx.Success {
		tx.TranslatedItinerary = strings.Join(out, paragraphSep)
	} else {
		tx.TranslatedItinerary = text
	}
	if tx.Untranslated > 0 {
		logger.Warn("itinerary paragraphs left untranslated",
			"target", target, "untranslated", tx.Untranslated, "translated", translated)
	}
	return tx
}

// rewrap puts the whitespace surrounding the original paragraph back around its translation.
func rewrap(orig, translated string) string {
	trimmed := strings.TrimLeftFunc(orig, unicode.IsSpace)
	lead := orig[:len(orig)-len(trimmed)]
	trail := trimmed[len(strings.TrimRightFunc(trimmed, unicode.IsSpace)):]
	return lead + strings.TrimSpace(translated) + trail
}
