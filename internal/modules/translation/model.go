// README: Translation, detection and language-list types.
package translation

// Translation is the outcome of one translate call. Translated is false when
// the text came back unchanged because no translation was available.
type Translation struct {
	OriginalText   string  `json:"original_text"`
	TranslatedText string  `json:"translated_text"`
	SourceLanguage string  `json:"source_language"`
	TargetLanguage string  `json:"target_language"`
	Confidence     float64 `json:"confidence"`
	Translated     bool    `json:"success"`
}

type Detection struct {
	Text             string  `json:"text"`
	DetectedLanguage string  `json:"detected_language"`
	Confidence       float64 `json:"confidence"`
}

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage *struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
	} `json:"detectedLanguage"`
}

type detectRequest struct {
	Q string `json:"q"`
}

type detectResponse []struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}
