package handlers

//go:generate mockgen -source=translate.go -destination=mock_translate.go -package=handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-microblog/internal/facades"
)

// Translator translates text between languages.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, destLang string) (string, error)
}

// TranslateRequest represents the JSON body for a translation
// swagger:model TranslateRequest
type TranslateRequest struct {
	// Text to translate
	// required: true
	Text string `json:"text" validate:"required"`

	// Source language code
	// required: true
	// default: es
	SourceLanguage string `json:"source_language" validate:"required"`

	// Destination language code
	// required: true
	// default: en
	DestLanguage string `json:"dest_language" validate:"required"`
}

// TranslateResponse represents a translated text
// swagger:model TranslateResponse
type TranslateResponse struct {
	Text string `json:"text"`
}

// NewTranslateHandler returns an HTTP handler that translates a post body.
// @Summary Translate text
// @Description Translates text with the configured translation service.
// @Tags posts
// @Accept json
// @Produce json
// @Param translateRequest body handlers.TranslateRequest true "Text and languages"
// @Success 200 {object} handlers.TranslateResponse "Translated text"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 502 {object} handlers.ErrorResponse "Translation failed"
// @Failure 503 {object} handlers.ErrorResponse "Translation not configured"
// @Router /translate [post]
// @Security BearerAuth
func NewTranslateHandler(svc Translator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TranslateRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		text, err := svc.Translate(r.Context(), req.Text, req.SourceLanguage, req.DestLanguage)
		if err != nil {
			switch {
			case errors.Is(err, facades.ErrTranslatorNotConfigured):
				writeError(w, http.StatusServiceUnavailable, err.Error())
			case errors.Is(err, facades.ErrTranslationFailed):
				writeError(w, http.StatusBadGateway, err.Error())
			default:
				writeInternalError(w, err)
			}
			return
		}

		writeJSON(w, http.StatusOK, TranslateResponse{Text: text})
	}
}
