// config.go - Haupt-Konfigurationsfunktionen fuer den Uebersetzer
//
// Dieses Modul enthaelt:
// - Host: Gibt Scheme und Host zurueck (UEBERSETZER_HOST)
// - AllowedOrigins: Gibt erlaubte Origins zurueck (UEBERSETZER_ORIGINS)
// - Models: Gibt das Artefakt-Verzeichnis zurueck (UEBERSETZER_MODELS)
// - MaxLength: Gibt die Standard-Ausgabelaenge zurueck (UEBERSETZER_MAX_LENGTH)
// - HistoryPath/NoHistory: Verlaufs-Datenbank (UEBERSETZER_HISTORY, _NOHISTORY)
// - PlotDir: Ausgabeverzeichnis fuer Attention-Heatmaps (UEBERSETZER_PLOTS)
// - LogLevel: Gibt Log-Level zurueck (UEBERSETZER_DEBUG)
//
// Utility-Funktionen und AsMap/Values sind in config_utils.go.
package envconfig

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Host gibt Scheme und Host zurueck
// Konfigurierbar via UEBERSETZER_HOST
// Default: http://127.0.0.1:11777
func Host() *url.URL {
	defaultPort := "11777"

	s := strings.TrimSpace(Var("UEBERSETZER_HOST"))
	scheme, hostport, ok := strings.Cut(s, "://")
	switch {
	case !ok:
		scheme, hostport = "http", s
	case scheme == "http":
		defaultPort = "80"
	case scheme == "https":
		defaultPort = "443"
	}

	hostport, path, _ := strings.Cut(hostport, "/")
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		host, port = "127.0.0.1", defaultPort
		if ip := net.ParseIP(strings.Trim(hostport, "[]")); ip != nil {
			host = ip.String()
		} else if hostport != "" {
			host = hostport
		}
	}

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		slog.Warn("invalid port, using default", "port", port, "default", defaultPort)
		port = defaultPort
	}

	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, port),
		Path:   path,
	}
}

// AllowedOrigins gibt erlaubte Origins zurueck
// Konfigurierbar via UEBERSETZER_ORIGINS (komma-separiert)
// Enthaelt Standard-Origins fuer localhost
func AllowedOrigins() (origins []string) {
	if s := Var("UEBERSETZER_ORIGINS"); s != "" {
		origins = strings.Split(s, ",")
	}

	for _, origin := range []string{"localhost", "127.0.0.1", "0.0.0.0"} {
		origins = append(origins,
			fmt.Sprintf("http://%s", origin),
			fmt.Sprintf("https://%s", origin),
			fmt.Sprintf("http://%s", net.JoinHostPort(origin, "*")),
			fmt.Sprintf("https://%s", net.JoinHostPort(origin, "*")),
		)
	}

	origins = append(origins,
		"app://*",
		"file://*",
	)

	return origins
}

// Models gibt das Verzeichnis fuer Checkpoints und Tokenizer zurueck
// Konfigurierbar via UEBERSETZER_MODELS
// Default: $HOME/.uebersetzer
func Models() string {
	if s := Var("UEBERSETZER_MODELS"); s != "" {
		return s
	}

	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	return filepath.Join(home, ".uebersetzer")
}

// MaxLength gibt die Standard-Obergrenze fuer die Ausgabelaenge zurueck
// Konfigurierbar via UEBERSETZER_MAX_LENGTH
// Default: 40 Tokens
var MaxLength = Uint("UEBERSETZER_MAX_LENGTH", 40)

// NoHistory deaktiviert die Verlaufs-Datenbank
// Konfigurierbar via UEBERSETZER_NOHISTORY
var NoHistory = Bool("UEBERSETZER_NOHISTORY")

// HistoryPath gibt den Pfad der Verlaufs-Datenbank zurueck
// Konfigurierbar via UEBERSETZER_HISTORY
// Default: <Models>/history.db
func HistoryPath() string {
	if s := Var("UEBERSETZER_HISTORY"); s != "" {
		return s
	}

	return filepath.Join(Models(), "history.db")
}

// PlotDir gibt das Ausgabeverzeichnis fuer Attention-Heatmaps zurueck
// Konfigurierbar via UEBERSETZER_PLOTS
// Default: <Models>/attention
func PlotDir() string {
	if s := Var("UEBERSETZER_PLOTS"); s != "" {
		return s
	}

	return filepath.Join(Models(), "attention")
}

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via UEBERSETZER_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("UEBERSETZER_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
