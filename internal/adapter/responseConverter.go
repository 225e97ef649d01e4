package adapter

import (
	"github.com/akandula/DocChatAPI/internal/api"
	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/internal/session"
)

func ToCreateSessionResponse(s *session.Session) api.CreateSessionResponse {
	return api.CreateSessionResponse{
		SessionID: s.ID,
		State:     string(s.State()),
	}
}

func ToProcessResponse(sessionID string, report chatModel.ProcessReport) api.ProcessResponse {
	return api.ProcessResponse{
		SessionID:  sessionID,
		Documents:  report.Documents,
		ChunkCount: report.ChunkCount,
		Warnings:   report.Warnings,
		DocErrors:  report.DocErrors,
	}
}

func ToAnswerResponse(sessionID string, question string, answer string, sources []string, history []chatModel.ConversationTurn) api.AnswerResponse {
	if sources == nil {
		sources = []string{}
	}
	return api.AnswerResponse{
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		Sources:   sources,
		History:   history,
	}
}

func ToHistoryResponse(sessionID string, turns []chatModel.ConversationTurn) api.HistoryResponse {
	if turns == nil {
		turns = []chatModel.ConversationTurn{}
	}
	return api.HistoryResponse{
		SessionID: sessionID,
		Turns:     turns,
	}
}

func BadRequest(id string, message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Code:    code,
		Message: message,
		Id:      id,
	}
}
