package chatModel

import "time"

type MediaType string

const (
	MediaTypePDF  MediaType = "application/pdf"
	MediaTypeDOCX MediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Upload is one named document blob as received from the client. It only
// lives for the duration of a single processing action.
type Upload struct {
	Name      string
	MediaType MediaType
	Data      []byte
}

// Chunk is one bounded window of the combined extracted text. The ID is
// positional ("chunk-<i>") and doubles as the retrieval source attribution.
type Chunk struct {
	ID   string
	Text string
}

// Match is one retrieved chunk with its similarity score.
type Match struct {
	ChunkID string  `json:"chunk_id"`
	Text    string  `json:"text"`
	Score   float32 `json:"score"`
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one message of the running dialogue. Assistant turns
// carry the chunk ids their answer was grounded on.
type ConversationTurn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Sources   []string  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PageWarning records a page that yielded no extractable text. Non-fatal.
type PageWarning struct {
	Document string `json:"document"`
	Page     int    `json:"page"`
}

// DocError records a document that could not be read at all. The rest of the
// batch still goes through.
type DocError struct {
	Document string `json:"document"`
	Reason   string `json:"reason"`
}

// ProcessReport is what a successful processing action tells the user.
type ProcessReport struct {
	Documents  int           `json:"documents"`
	ChunkCount int           `json:"chunk_count"`
	Warnings   []PageWarning `json:"warnings,omitempty"`
	DocErrors  []DocError    `json:"doc_errors,omitempty"`
}
