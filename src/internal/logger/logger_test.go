package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizePayloadMasksSensitiveKeys(t *testing.T) {
	payload := map[string]any{
		"userId":   "12345678",
		"password": "1234",
		"nested": map[string]any{
			"PIN":           "4567",
			"Authorization": "Basic abc",
			"amount":        "100.00",
		},
		"items": []any{map[string]any{"pin_hash": "$2a$..."}},
	}

	got := SanitizePayload(payload).(map[string]any)
	require.Equal(t, "12345678", got["userId"])
	require.Equal(t, "******", got["password"])

	nested := got["nested"].(map[string]any)
	require.Equal(t, "******", nested["PIN"])
	require.Equal(t, "******", nested["Authorization"])
	require.Equal(t, "100.00", nested["amount"])

	item := got["items"].([]any)[0].(map[string]any)
	require.Equal(t, "******", item["pin_hash"])
}

func TestSanitizePayloadUsesJSONNames(t *testing.T) {
	type loginRequest struct {
		UserID   string `json:"userId"`
		Password string `json:"password"`
	}

	got := SanitizePayload(loginRequest{UserID: "1", Password: "secret"}).(map[string]any)
	require.Equal(t, "******", got["password"])
}

func TestConfigureJSONWritesFields(t *testing.T) {
	t.Cleanup(func() { Configure(os.Stdout, "info", "text") })

	var buf bytes.Buffer
	Configure(&buf, "info", "json")

	Error("transfer failed", errors.New("boom"), Fields{"pin": "4567", "sessionId": "s1"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "ERROR", line["level"])
	require.Equal(t, "transfer failed", line["msg"])

	fields := line["fields"].(string)
	require.Contains(t, fields, `"error":"boom"`)
	require.Contains(t, fields, `"sessionId":"s1"`)
	require.NotContains(t, fields, "4567")
}

func TestConfigureLevelFilters(t *testing.T) {
	t.Cleanup(func() { Configure(os.Stdout, "info", "text") })

	var buf bytes.Buffer
	Configure(&buf, "warn", "text")

	Info("hidden", nil)
	Warn("shown", Fields{"k": "v"})

	out := buf.String()
	require.False(t, strings.Contains(out, "hidden"))
	require.True(t, strings.Contains(out, "shown"))
}
