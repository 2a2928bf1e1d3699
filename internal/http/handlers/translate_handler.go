// README: Translation pass-through handlers, including paragraph-wise itinerary translation.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"journeo/internal/modules/translation"
	"journeo/internal/service"
	"journeo/internal/types"
)

type TranslationProvider interface {
	service.Translator
	Detect(ctx context.Context, text string) types.Result[translation.Detection]
	Languages(ctx context.Context) types.Result[[]translation.Language]
}

type TranslateHandler struct {
	translation TranslationProvider
	logger      *slog.Logger
}

func NewTranslateHandler(svc TranslationProvider, logger *slog.Logger) *TranslateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TranslateHandler{translation: svc, logger: logger}
}

type translateReq struct {
	Text           string `json:"text" form:"text"`
	TargetLanguage string `json:"target_language" form:"target_language"`
	SourceLanguage string `json:"source_language" form:"source_language"`
}

// bindText reads fields from the query string, falling back to a JSON body.
func bindText(c *gin.Context, req *translateReq) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return err
	}
	if req.Text != "" || c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(req)
}

// Translate handles POST /api/translate/.
func (h *TranslateHandler) Translate(c *gin.Context) {
	var req translateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.TargetLanguage) == "" {
		writeError(c, http.StatusBadRequest, "missing text or target_language")
		return
	}
	writeResult(c, h.translation.Translate(c.Request.Context(), req.Text, req.TargetLanguage, req.SourceLanguage))
}

// Itinerary handles POST /api/translate/itinerary.
func (h *TranslateHandler) Itinerary(c *gin.Context) {
	var req translateReq
	if err := bindText(c, &req); err != nil {
		writeBindError(c, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.TargetLanguage) == "" {
		writeError(c, http.StatusBadRequest, "missing text or target_language")
		return
	}
	tx := service.TranslateItinerary(c.Request.Context(), h.translation, req.Text, req.TargetLanguage, h.logger)
	source := types.SourceLive
	if tx.Degraded || !tx.Success {
		source = types.SourceDegraded
	}
	c.Header(SourceHeader, string(source))
	writeJSON(c, http.StatusOK, tx)
}

// Languages handles GET /api/translate/languages.
func (h *TranslateHandler) Languages(c *gin.Context) {
	writeResult(c, h.translation.Languages(c.Request.Context()))
}

// Detect handles POST /api/translate/detect.
func (h *TranslateHandler) Detect(c *gin.Context) {
	var req translateReq
	if err := bindText(c, &req); err != nil {
		writeBindError(c, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(c, http.StatusBadRequest, "missing text")
		return
	}
	writeResult(c, h.translation.Detect(c.Request.Context(), req.Text))
}
