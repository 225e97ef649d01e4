package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/akandula/DocChatAPI/internal/adapter"
	"github.com/akandula/DocChatAPI/internal/adapter/utils"
	"github.com/akandula/DocChatAPI/internal/api"
	"github.com/akandula/DocChatAPI/internal/config"
	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/internal/rag/extract"
	"github.com/akandula/DocChatAPI/internal/session"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

var (
	handlerInstance *SessionHandler //private singleton
	once            sync.Once
	logRH           *logx.Logger
)

type SessionHandler struct {
	manager *session.Manager
}

func InitSessionHandler(manager *session.Manager) {
	once.Do(func() {
		handlerInstance = &SessionHandler{manager: manager}
		logRH = logx.NewLogger("session_handler")
		logRH.Info("Starting session handler")
	})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}

	s := handlerInstance.manager.Create(r.Context())
	writeJsonResponse(w, http.StatusCreated, adapter.ToCreateSessionResponse(s))
}

// ProcessDocumentsHandler accepts one or more PDF/DOCX files as
// multipart/form-data under the "documents" field and processes them
// synchronously into the session's index.
func ProcessDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}
	sessionID := utils.GetChiURLParam(r, "id")

	if err := r.ParseMultipartForm(config.MaxUploadBytes); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, sessionID, "File too large or bad request")
		return
	}

	uploads, errMsg := collectUploads(r)
	if errMsg != "" {
		WriteErrorResponse(w, http.StatusBadRequest, sessionID, errMsg)
		return
	}

	report, err := handlerInstance.manager.ProcessDocuments(r.Context(), sessionID, uploads)
	if err != nil {
		code, msg := mapError(err)
		WriteErrorResponse(w, code, sessionID, msg)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToProcessResponse(sessionID, report))
}

// AskHandler answers one question grounded in the session's processed
// documents.
func AskHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}
	sessionID := utils.GetChiURLParam(r, "id")

	var requestData api.QuestionRequest
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logRH.Error("Couldn't close the ask handler reader", "error", err)
		}
	}(r.Body)

	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad question request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, sessionID, "Bad Request")
		return
	}
	if strings.TrimSpace(requestData.Question) == "" {
		WriteErrorResponse(w, http.StatusUnprocessableEntity, sessionID, "question is required")
		return
	}

	answer, sources, history, err := handlerInstance.manager.Ask(r.Context(), sessionID, requestData.Question)
	if err != nil {
		code, msg := mapError(err)
		WriteErrorResponse(w, code, sessionID, msg)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAnswerResponse(sessionID, requestData.Question, answer, sources, history))
}

func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}
	sessionID := utils.GetChiURLParam(r, "id")

	turns, err := handlerInstance.manager.Transcript(r.Context(), sessionID)
	if err != nil {
		code, msg := mapError(err)
		WriteErrorResponse(w, code, sessionID, msg)
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToHistoryResponse(sessionID, turns))
}

func DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}
	sessionID := utils.GetChiURLParam(r, "id")

	if err := handlerInstance.manager.Delete(r.Context(), sessionID); err != nil {
		code, msg := mapError(err)
		WriteErrorResponse(w, code, sessionID, msg)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// collectUploads pulls every file out of the "documents" form field. Files
// whose media type cannot be resolved are still passed through; the
// extractor skips what it cannot read.
func collectUploads(r *http.Request) ([]chatModel.Upload, string) {
	if r.MultipartForm == nil || len(r.MultipartForm.File["documents"]) == 0 {
		return nil, "at least one file is required under the 'documents' field"
	}

	var uploads []chatModel.Upload
	for _, header := range r.MultipartForm.File["documents"] {
		file, err := header.Open()
		if err != nil {
			return nil, "could not read uploaded file " + header.Filename
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, "could not read uploaded file " + header.Filename
		}

		mediaType, _ := extract.ResolveMediaType(header.Header.Get("Content-Type"), header.Filename)
		uploads = append(uploads, chatModel.Upload{
			Name:      header.Filename,
			MediaType: mediaType,
			Data:      data,
		})
	}
	return uploads, ""
}
