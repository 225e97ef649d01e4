package mcpserver

import (
	"context"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/internal/rag/extract"
)

// ProcessDocumentsInput names local files to read and index into a session.
type ProcessDocumentsInput struct {
	SessionID string   `json:"session_id,omitempty" jsonschema:"session to process into; omit to create a new session"`
	Paths     []string `json:"paths" jsonschema:"filesystem paths of the PDF or DOCX documents to process"`
}

type ProcessDocumentsOutput struct {
	SessionID  string                  `json:"session_id"`
	Documents  int                     `json:"documents"`
	ChunkCount int                     `json:"chunk_count"`
	Warnings   []chatModel.PageWarning `json:"warnings,omitempty"`
	DocErrors  []chatModel.DocError    `json:"doc_errors,omitempty"`
}

// AskQuestionInput asks one question against a processed session.
type AskQuestionInput struct {
	SessionID string `json:"session_id" jsonschema:"session that has processed documents"`
	Question  string `json:"question" jsonschema:"the question to answer from the documents"`
}

type AskQuestionOutput struct {
	SessionID string   `json:"session_id"`
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_documents",
		Description: "Read PDF/DOCX files from disk and index them into a chat session",
	}, s.handleProcessDocuments)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question grounded in a session's processed documents",
	}, s.handleAskQuestion)
}

func (s *Server) handleProcessDocuments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessDocumentsInput,
) (*mcp.CallToolResult, ProcessDocumentsOutput, error) {
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = s.manager.Create(ctx).ID
	}

	uploads := make([]chatModel.Upload, 0, len(input.Paths))
	for _, path := range input.Paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, ProcessDocumentsOutput{}, err
		}
		mediaType, _ := extract.ResolveMediaType("", filepath.Base(path))
		uploads = append(uploads, chatModel.Upload{
			Name:      filepath.Base(path),
			MediaType: mediaType,
			Data:      data,
		})
	}

	report, err := s.manager.ProcessDocuments(ctx, sessionID, uploads)
	if err != nil {
		return nil, ProcessDocumentsOutput{}, err
	}

	return nil, ProcessDocumentsOutput{
		SessionID:  sessionID,
		Documents:  report.Documents,
		ChunkCount: report.ChunkCount,
		Warnings:   report.Warnings,
		DocErrors:  report.DocErrors,
	}, nil
}

func (s *Server) handleAskQuestion(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskQuestionInput,
) (*mcp.CallToolResult, AskQuestionOutput, error) {
	answer, sources, _, err := s.manager.Ask(ctx, input.SessionID, input.Question)
	if err != nil {
		return nil, AskQuestionOutput{}, err
	}

	if sources == nil {
		sources = []string{}
	}
	return nil, AskQuestionOutput{
		SessionID: input.SessionID,
		Answer:    answer,
		Sources:   sources,
	}, nil
}
