// config_test.go - Tests fuer Environment-Konfiguration
package envconfig

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHost(t *testing.T) {
	cases := map[string]string{
		"":                      "http://127.0.0.1:11777",
		"1.2.3.4":               "http://1.2.3.4:11777",
		"1.2.3.4:5678":          "http://1.2.3.4:5678",
		"http://1.2.3.4":        "http://1.2.3.4:80",
		"https://example.com":   "https://example.com:443",
		"example.com:11777":     "http://example.com:11777",
		"\"http://1.2.3.4\"":    "http://1.2.3.4:80",
		"0.0.0.0:99999":         "http://0.0.0.0:11777",
		"[2001:db8::1]:11777":   "http://[2001:db8::1]:11777",
	}

	for value, expect := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("UEBERSETZER_HOST", value)
			require.Equal(t, expect, Host().String())
		})
	}
}

func TestMaxLength(t *testing.T) {
	t.Setenv("UEBERSETZER_MAX_LENGTH", "")
	require.EqualValues(t, 40, MaxLength())

	t.Setenv("UEBERSETZER_MAX_LENGTH", "64")
	require.EqualValues(t, 64, MaxLength())

	// Ungueltige Werte fallen auf den Default zurueck
	t.Setenv("UEBERSETZER_MAX_LENGTH", "abc")
	require.EqualValues(t, 40, MaxLength())
}

func TestNoHistory(t *testing.T) {
	t.Setenv("UEBERSETZER_NOHISTORY", "")
	require.False(t, NoHistory())

	t.Setenv("UEBERSETZER_NOHISTORY", "1")
	require.True(t, NoHistory())

	t.Setenv("UEBERSETZER_NOHISTORY", "false")
	require.False(t, NoHistory())
}

func TestLogLevel(t *testing.T) {
	t.Setenv("UEBERSETZER_DEBUG", "")
	require.Equal(t, slog.LevelInfo, LogLevel())

	t.Setenv("UEBERSETZER_DEBUG", "1")
	require.Equal(t, slog.LevelDebug, LogLevel())

	t.Setenv("UEBERSETZER_DEBUG", "2")
	require.Equal(t, slog.Level(-8), LogLevel())
}

func TestHistoryPath(t *testing.T) {
	t.Setenv("UEBERSETZER_HISTORY", "/tmp/other.db")
	require.Equal(t, "/tmp/other.db", HistoryPath())
}

func TestAsMapCoversValues(t *testing.T) {
	m := AsMap()
	require.Contains(t, m, "UEBERSETZER_HOST")
	require.Contains(t, m, "UEBERSETZER_MAX_LENGTH")

	vals := Values()
	require.Len(t, vals, len(m))
}
