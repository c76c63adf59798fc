// config_utils.go - Utility-Funktionen und Export fuer Konfiguration
//
// Dieses Modul enthaelt:
// - Bool: Boolean-Getter (Default: false)
// - Uint: Integer-Getter mit Default-Wert
// - EnvVar: Struktur fuer Environment-Variablen-Info
// - AsMap: Gibt alle Konfigurationen als Map zurueck
// - Values: Gibt alle Konfigurationswerte als String-Map zurueck
package envconfig

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Bool gibt eine Funktion zurueck, die einen Bool liest (Default: false)
func Bool(k string) func() bool {
	return func() bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return false
	}
}

// Uint gibt eine Funktion zurueck, die einen uint mit Default-Wert liest
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// EnvVar repraesentiert eine Environment-Variable mit Metadaten
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap gibt alle Konfigurationen als Map zurueck
// Enthaelt Namen, aktuelle Werte und Beschreibungen
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"UEBERSETZER_DEBUG":      {"UEBERSETZER_DEBUG", LogLevel(), "Show additional debug information (e.g. UEBERSETZER_DEBUG=1)"},
		"UEBERSETZER_HOST":       {"UEBERSETZER_HOST", Host(), "IP Address for the uebersetzer server (default 127.0.0.1:11777)"},
		"UEBERSETZER_MODELS":     {"UEBERSETZER_MODELS", Models(), "The path to the checkpoint and tokenizer directory"},
		"UEBERSETZER_MAX_LENGTH": {"UEBERSETZER_MAX_LENGTH", MaxLength(), "Default maximum number of generated tokens per translation (default 40)"},
		"UEBERSETZER_ORIGINS":    {"UEBERSETZER_ORIGINS", AllowedOrigins(), "A comma separated list of allowed origins"},
		"UEBERSETZER_NOHISTORY":  {"UEBERSETZER_NOHISTORY", NoHistory(), "Do not record translations in the history database"},
		"UEBERSETZER_HISTORY":    {"UEBERSETZER_HISTORY", HistoryPath(), "Path of the translation history database"},
		"UEBERSETZER_PLOTS":      {"UEBERSETZER_PLOTS", PlotDir(), "Output directory for attention heatmaps"},
	}
}

// Values gibt alle Konfigurationswerte als String-Map zurueck (fuer Logging)
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
