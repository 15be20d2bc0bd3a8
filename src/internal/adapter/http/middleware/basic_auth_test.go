package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/api-sage/banco-digital/src/internal/commons"
	"github.com/stretchr/testify/require"
)

const (
	testChannelID  = "BancoDigitalApp"
	testChannelKey = "BancoDigitalKey001"
)

func basicAuthHeader(id, key string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(id+":"+key))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) commons.Response[any] {
	t.Helper()

	var body commons.Response[any]
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body
}

func TestBasicAuth_AllowsValidCredentials(t *testing.T) {
	mw := BasicAuth(testChannelID, testChannelKey)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.Header.Set("Authorization", basicAuthHeader(testChannelID, testChannelKey))

	rr := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestBasicAuth_RejectsInvalidCredentials(t *testing.T) {
	mw := BasicAuth(testChannelID, testChannelKey)

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.Header.Set("Authorization", basicAuthHeader(testChannelID, "WrongKey"))

	rr := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, authRealm, rr.Header().Get("WWW-Authenticate"))
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := decodeEnvelope(t, rr)
	require.False(t, body.Success)
	require.Equal(t, "unauthorized channel", body.Message)
}

func TestBasicAuth_RejectsMissingCredentials(t *testing.T) {
	mw := BasicAuth(testChannelID, testChannelKey)

	rr := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, authRealm, rr.Header().Get("WWW-Authenticate"))
}

func TestBasicAuth_FailsClosedWithoutConfiguration(t *testing.T) {
	mw := BasicAuth("", "")

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	req.Header.Set("Authorization", basicAuthHeader("", ""))

	rr := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.False(t, decodeEnvelope(t, rr).Success)
}
