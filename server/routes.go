// Package server - Haupt-Router und Server-Setup
// Beinhaltet: Server-Struct, Router-Registrierung, Server-Start
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/7blacky7/uebersetzer/envconfig"
	"github.com/7blacky7/uebersetzer/logutil"
	"github.com/7blacky7/uebersetzer/model"
	"github.com/7blacky7/uebersetzer/plot"
	"github.com/7blacky7/uebersetzer/store"
	"github.com/7blacky7/uebersetzer/tokenizer"
	"github.com/7blacky7/uebersetzer/translate"
	"github.com/7blacky7/uebersetzer/version"
)

var mode string = gin.ReleaseMode

func init() {
	switch mode {
	case gin.DebugMode:
	case gin.ReleaseMode:
	case gin.TestMode:
	default:
		mode = gin.ReleaseMode
	}

	gin.SetMode(mode)
}

// Server verwaltet den HTTP-Server, das Modell und die Historie
type Server struct {
	addr       net.Addr
	translator *translate.Translator
	source     tokenizer.TextProcessor
	history    *store.Store
}

// NewServer wires a translator around the loaded model and tokenizers.
func NewServer(m model.Model, source, target tokenizer.TextProcessor, history *store.Store) *Server {
	return &Server{
		translator: &translate.Translator{
			Source:    source,
			Target:    target,
			Model:     m,
			MaxLength: int(envconfig.MaxLength()),
			Sink: &plot.FileSink{
				Dir:    envconfig.PlotDir(),
				Source: source,
				Target: target,
			},
		},
		source:  source,
		history: history,
	}
}

// GenerateRoutes erstellt und konfiguriert den HTTP-Router
func (s *Server) GenerateRoutes() (http.Handler, error) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowWildcard = true
	corsConfig.AllowBrowserExtensions = true
	corsConfig.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"User-Agent",
		"Accept",
		"X-Requested-With",
	}
	corsConfig.AllowOrigins = envconfig.AllowedOrigins()

	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.Use(
		cors.New(corsConfig),
		allowedHostsMiddleware(s.addr),
	)

	// General
	r.HEAD("/", func(c *gin.Context) { c.String(http.StatusOK, "Uebersetzer is running") })
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "Uebersetzer is running") })
	r.HEAD("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })
	r.GET("/api/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": version.Version}) })

	// Translation
	r.POST("/api/translate", s.TranslateHandler)
	r.POST("/api/tokenize", s.TokenizeHandler)
	r.GET("/api/history", s.HistoryHandler)

	return r, nil
}

// Serve startet den HTTP-Server auf dem uebergebenen Listener
func Serve(ln net.Listener, m model.Model, source, target tokenizer.TextProcessor) error {
	slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
	slog.Info("server config", "env", envconfig.Values())

	var history *store.Store
	if !envconfig.NoHistory() {
		var err error
		history, err = store.New(envconfig.HistoryPath())
		if err != nil {
			return err
		}
		defer history.Close()
	}

	s := NewServer(m, source, target, history)
	s.addr = ln.Addr()

	h, err := s.GenerateRoutes()
	if err != nil {
		return err
	}

	slog.Info(fmt.Sprintf("Listening on %s (version %s)", ln.Addr(), version.Version))
	srvr := &http.Server{Handler: h}

	// listen for a ctrl+c and close the history database cleanly
	ctx, done := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		srvr.Close()
		done()
	}()

	if err := srvr.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-ctx.Done()
	return nil
}
