package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/sbilibin2017/gw-microblog/internal/facades"
)

func TestTranslateHandler(t *testing.T) {
	body := TranslateRequest{Text: "Hola", SourceLanguage: "es", DestLanguage: "en"}

	tests := []struct {
		name         string
		body         any
		mockSetup    func(m *MockTranslator)
		expectedCode int
		expectedBody string
	}{
		{
			name: "translated",
			body: body,
			mockSetup: func(m *MockTranslator) {
				m.EXPECT().Translate(gomock.Any(), "Hola", "es", "en").Return("Hello", nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"text":"Hello"}`,
		},
		{
			name: "not configured",
			body: body,
			mockSetup: func(m *MockTranslator) {
				m.EXPECT().Translate(gomock.Any(), "Hola", "es", "en").Return("", facades.ErrTranslatorNotConfigured)
			},
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: `{"error":"Error: the translation service is not configured."}`,
		},
		{
			name: "failed",
			body: body,
			mockSetup: func(m *MockTranslator) {
				m.EXPECT().Translate(gomock.Any(), "Hola", "es", "en").Return("", facades.ErrTranslationFailed)
			},
			expectedCode: http.StatusBadGateway,
			expectedBody: `{"error":"Error: the translation service failed."}`,
		},
		{
			name: "unexpected",
			body: body,
			mockSetup: func(m *MockTranslator) {
				m.EXPECT().Translate(gomock.Any(), "Hola", "es", "en").Return("", errors.New("boom"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockTranslator(ctrl)
			tt.mockSetup(mockSvc)

			rr := serve(NewTranslateHandler(mockSvc), http.MethodPost, "/translate", "/translate", tt.body, 1)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}
}
