package api

import "github.com/akandula/DocChatAPI/internal/domain/chatModel"

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
}

type ProcessResponse struct {
	SessionID  string                  `json:"session_id"`
	Documents  int                     `json:"documents"`
	ChunkCount int                     `json:"chunk_count"`
	Warnings   []chatModel.PageWarning `json:"warnings,omitempty"`
	DocErrors  []chatModel.DocError    `json:"doc_errors,omitempty"`
}

type AnswerResponse struct {
	SessionID string                       `json:"session_id"`
	Question  string                       `json:"question"`
	Answer    string                       `json:"answer"`
	Sources   []string                     `json:"sources"`
	History   []chatModel.ConversationTurn `json:"history"`
}

type HistoryResponse struct {
	SessionID string                       `json:"session_id"`
	Turns     []chatModel.ConversationTurn `json:"turns"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"404"`
	Message string `json:"message" example:"session not found"`
	Id      string `json:"id,omitempty"`
}

// requests---------------------

type QuestionRequest struct {
	Question string `json:"question" validate:"required"`
}
