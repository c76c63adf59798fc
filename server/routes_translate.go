// routes_translate.go - Handler fuer Uebersetzung, Tokenisierung und Historie
// Enthaelt: TranslateHandler, TokenizeHandler, HistoryHandler
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/7blacky7/uebersetzer/api"
	"github.com/7blacky7/uebersetzer/translate"
)

// TranslateHandler uebersetzt einen Satz und schreibt ihn in die Historie
func (s *Server) TranslateHandler(c *gin.Context) {
	var req api.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	id := uuid.NewString()
	translator := *s.translator
	if req.MaxLength > 0 {
		translator.MaxLength = req.MaxLength
	}

	start := time.Now()
	result, err := translator.Translate(req.Text, req.Plot)
	duration := time.Since(start)

	if err != nil {
		slog.Error("translation failed", "id", id, "error", err)

		status := http.StatusInternalServerError
		if errors.Is(err, translate.ErrEmptySentence) || errors.Is(err, translate.ErrInvalidMaxLength) {
			status = http.StatusBadRequest
		}
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return
	}

	slog.Info("translated", "id", id, "duration", duration)

	if s.history != nil {
		if _, err := s.history.Add(req.Text, result, duration); err != nil {
			// Historie ist nicht kritisch fuer die Antwort
			slog.Warn("failed to record translation", "id", id, "error", err)
		}
	}

	c.JSON(http.StatusOK, api.TranslateResponse{
		ID:       id,
		Text:     req.Text,
		Result:   result,
		Duration: duration.Milliseconds(),
	})
}

// TokenizeHandler zerlegt einen Text in Subword-Ids
func (s *Server) TokenizeHandler(c *gin.Context) {
	var req api.TokenizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := s.source.Encode(req.Text)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, api.TokenizeResponse{Tokens: tokens})
}

// HistoryHandler listet die letzten Uebersetzungen
func (s *Server) HistoryHandler(c *gin.Context) {
	if s.history == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "history is disabled"})
		return
	}

	limit := 0
	if q := c.Query("limit"); q != "" {
		var err error
		limit, err = strconv.Atoi(q)
		if err != nil || limit < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
	}

	translations, err := s.history.List(limit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entries := make([]api.HistoryEntry, len(translations))
	for i, t := range translations {
		entries[i] = api.HistoryEntry{
			ID:        t.ID,
			Source:    t.Source,
			Result:    t.Result,
			Duration:  t.Duration,
			CreatedAt: t.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, api.HistoryResponse{Translations: entries})
}
