// types.go - Request- und Response-Typen der REST-API
//
// Enthaelt: StatusError sowie die JSON-Typen fuer /api/translate,
// /api/tokenize, /api/history und /api/version.
package api

import (
	"fmt"
	"time"
)

// StatusError is an error with an HTTP status code and message.
type StatusError struct {
	StatusCode   int    `json:"-"`
	Status       string `json:"-"`
	ErrorMessage string `json:"error"`
}

func (e StatusError) Error() string {
	switch {
	case e.Status != "" && e.ErrorMessage != "":
		return fmt.Sprintf("%s: %s", e.Status, e.ErrorMessage)
	case e.Status != "":
		return e.Status
	case e.ErrorMessage != "":
		return e.ErrorMessage
	default:
		return "something went wrong, please see the server logs for details"
	}
}

// TranslateRequest describes a request sent by [Client.Translate].
type TranslateRequest struct {
	// Text is the source sentence to translate.
	Text string `json:"text"`

	// MaxLength caps the number of generated tokens. Zero selects the
	// server default.
	MaxLength int `json:"max_length,omitempty"`

	// Plot names a decoder attention layer to render, for example
	// "decoder_layer4_block2". Empty disables plotting.
	Plot string `json:"plot,omitempty"`
}

// TranslateResponse is the response returned by [Client.Translate].
type TranslateResponse struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Result string `json:"result"`

	// Duration is the wall-clock translation time in milliseconds.
	Duration int64 `json:"duration_ms"`
}

// TokenizeRequest describes a request sent by [Client.Tokenize].
type TokenizeRequest struct {
	Text string `json:"text"`
}

// TokenizeResponse holds the subword ids of the tokenized text.
type TokenizeResponse struct {
	Tokens []int32 `json:"tokens"`
}

// HistoryResponse lists recorded translations, newest first.
type HistoryResponse struct {
	Translations []HistoryEntry `json:"translations"`
}

// HistoryEntry is one recorded translation.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Result    string    `json:"result"`
	Duration  int64     `json:"duration_ms"`
	CreatedAt time.Time `json:"created_at"`
}

// VersionResponse reports the running server version.
type VersionResponse struct {
	Version string `json:"version"`
}
