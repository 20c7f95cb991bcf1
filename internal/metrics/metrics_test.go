package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHandler_ExposesCollectors(t *testing.T) {
	HTTPRequests.WithLabelValues("/feed", http.MethodGet, "200").Inc()
	MailSent.WithLabelValues("ok").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "microblog_http_requests_total")
	assert.Contains(t, rec.Body.String(), "microblog_mail_sent_total")
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(PostsCreated)
	PostsCreated.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(PostsCreated))
}
