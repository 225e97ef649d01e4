package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akandula/DocChatAPI/internal/adapter"
	"github.com/akandula/DocChatAPI/internal/rag"
	"github.com/akandula/DocChatAPI/internal/session"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// too late for a clean status code
		logRH.Error("Error encoding response", "error", err)
	}
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

// mapError translates the domain failure classes onto HTTP status codes.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, session.ErrSessionBusy):
		return http.StatusConflict, "another action is in flight for this session"
	case errors.Is(err, session.ErrNoIndex):
		return http.StatusConflict, "question processing refused: process documents first"
	case errors.Is(err, rag.ErrNoExtractedText):
		return http.StatusUnprocessableEntity, "no extractable text in the uploaded documents"
	case errors.Is(err, rag.ErrNoChunks):
		return http.StatusUnprocessableEntity, "extracted text produced no chunks"
	case errors.Is(err, rag.ErrIndexBuild):
		return http.StatusBadGateway, "document processing failed"
	case errors.Is(err, rag.ErrQuestionFailed):
		return http.StatusBadGateway, "question processing failed"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "action timed out"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}
