package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sbilibin2017/gw-microblog/internal/logger"
)

// DefaultTranslatorEndpoint is the Microsoft Translator v3 API.
const DefaultTranslatorEndpoint = "https://api.cognitive.microsofttranslator.com"

var (
	ErrTranslatorNotConfigured = errors.New("Error: the translation service is not configured.")
	ErrTranslationFailed       = errors.New("Error: the translation service failed.")
)

// TranslatorFacade calls the Microsoft Translator text API.
type TranslatorFacade struct {
	client   *http.Client
	endpoint string
	key      string
	region   string
}

// NewTranslatorFacade creates a facade. An empty key leaves the service unconfigured.
func NewTranslatorFacade(endpoint, key, region string) *TranslatorFacade {
	return &TranslatorFacade{
		client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		endpoint: endpoint,
		key:      key,
		region:   region,
	}
}

type translateResponse []struct {
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

// Translate converts text from sourceLang to destLang.
// The returned errors carry user facing messages.
func (f *TranslatorFacade) Translate(ctx context.Context, text, sourceLang, destLang string) (string, error) {
	if f.key == "" {
		return "", ErrTranslatorNotConfigured
	}

	body, err := json.Marshal([]map[string]string{{"Text": text}})
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("api-version", "3.0")
	q.Set("from", sourceLang)
	q.Set("to", destLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint+"/translate?"+q.Encode(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", f.key)
	req.Header.Set("Ocp-Apim-Subscription-Region", f.region)

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("translation request failed", "error", err)
		return "", ErrTranslationFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Errorw("translation service error", "status", resp.StatusCode)
		return "", ErrTranslationFailed
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logger.Log.Errorw("failed to decode translation", "error", fmt.Errorf("decode: %w", err))
		return "", ErrTranslationFailed
	}
	if len(parsed) == 0 || len(parsed[0].Translations) == 0 {
		return "", ErrTranslationFailed
	}

	return parsed[0].Translations[0].Text, nil
}
