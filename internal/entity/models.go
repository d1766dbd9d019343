package entity

import (
	"fmt"
	"time"
)

type WorkflowStep string

// Workflow step represents the current state of the agent session workflow
const (
	StepIdle              WorkflowStep = "idle"               // Session created, waiting for input
	StepParsingContext    WorkflowStep = "parsing_context"    // Extracting requirement from user text
	StepClassifyingIntent WorkflowStep = "classifying_intent" // Classifying prompt intent
	StepGeneratingCode    WorkflowStep = "generating_code"    // Generating code via Oracle
	StepAnalyzingCode     WorkflowStep = "analyzing_code"     // Analyzing latest generated code
	StepCompleted         WorkflowStep = "completed"          // Workflow finished successfully
	StepError             WorkflowStep = "error"              // Workflow failed
)

type Intent string

const (
	IntentCreateNew      Intent = "create_new"
	IntentModifyExisting Intent = "modify_existing"
	IntentAnalyze        Intent = "analyze"
	IntentChitchat       Intent = "chitchat"
	IntentUnknown        Intent = "unknown"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderSystem    Sender = "system"
	SenderAssistant Sender = "assistant"
)

func (s Sender) Validate() error {
	switch s {
	case SenderUser, SenderSystem, SenderAssistant:
		return nil
	default:
		return fmt.Errorf("unknown sender: %s", s)
	}
}

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusProcessing RequestStatus = "processing"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusFailed     RequestStatus = "failed"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusProcessing, RequestStatusCompleted, RequestStatusFailed:
		return true
	default:
		return false
	}
}

type ExecutionStatus string

const (
	ExecutionStatusPending ExecutionStatus = "pending"
	ExecutionStatusSuccess ExecutionStatus = "success"
	ExecutionStatusError   ExecutionStatus = "error"
)

func (s ExecutionStatus) IsValid() bool {
	switch s {
	case ExecutionStatusPending, ExecutionStatusSuccess, ExecutionStatusError:
		return true
	default:
		return false
	}
}

// CodeEntry is one generated-code record in a session's history.
type CodeEntry struct {
	Code        string    `json:"code" bson:"code"`
	Language    string    `json:"language" bson:"language"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Session holds per-conversation orchestration state. A session is mutated by
// exactly one logical conversation thread at a time, so no in-process locking
// protocol is attached to it.
type Session struct {
	ID           string            `json:"session_id"`
	UserID       string            `json:"user_id"`
	CurrentStep  WorkflowStep      `json:"current_step"`
	Requirement  *Requirement      `json:"requirement,omitempty"`
	PendingField FieldTag          `json:"pending_field,omitempty"`
	RefineTurns  int               `json:"refine_turns"`
	CodeHistory  []CodeEntry       `json:"code_history"`
	LastIntent   Intent            `json:"last_intent,omitempty"`
	LastPrompt   string            `json:"last_prompt,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// AddCodeToHistory appends a generated-code entry to the session history.
func (s *Session) AddCodeToHistory(code, language, description string) {
	s.CodeHistory = append(s.CodeHistory, CodeEntry{
		Code:        code,
		Language:    language,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	})
}

// LatestCode returns the most recent history entry, or nil if none exists.
func (s *Session) LatestCode() *CodeEntry {
	if len(s.CodeHistory) == 0 {
		return nil
	}
	return &s.CodeHistory[len(s.CodeHistory)-1]
}

// Conversation is the chat container. MessageCount is maintained by atomic
// increments on message create/delete, not recomputed per query, so it can
// drift if a create-then-increment sequence partially fails.
type Conversation struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Goal         string    `json:"goal"`
	MessageCount int       `json:"messageCount"`
	Facts        []string  `json:"facts"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Message struct {
	ID             string    `json:"_id"`
	ConversationID string    `json:"conversationId"`
	Sender         Sender    `json:"sender"`
	Text           string    `json:"text"`
	Type           string    `json:"type"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CodeGeneration struct {
	ID                string    `json:"_id"`
	UserID            string    `json:"user_id"`
	Prompt            string    `json:"prompt"`
	Language          string    `json:"language"`
	Framework         string    `json:"framework,omitempty"`
	AdditionalContext string    `json:"additional_context,omitempty"`
	GeneratedCode     string    `json:"generated_code"`
	Explanation       string    `json:"explanation,omitempty"`
	Model             string    `json:"model"`
	Success           bool      `json:"success"`
	ErrorMessage      string    `json:"error_message,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type ReviewIssue struct {
	Severity    string `json:"severity" bson:"severity"`
	LineNumber  *int   `json:"line_number,omitempty" bson:"line_number,omitempty"`
	IssueType   string `json:"issue_type" bson:"issue_type"`
	Description string `json:"description" bson:"description"`
	Suggestion  string `json:"suggestion" bson:"suggestion"`
}

type CodeReview struct {
	ID           string        `json:"_id"`
	UserID       string        `json:"user_id"`
	GenerationID string        `json:"code_generation_id,omitempty"`
	Code         string        `json:"code"`
	Language     string        `json:"language"`
	ReviewType   string        `json:"review_type"`
	OverallScore float64       `json:"overall_score"`
	Issues       []ReviewIssue `json:"issues"`
	Summary      string        `json:"summary,omitempty"`
	Improvements []string      `json:"improvements"`
	Model        string        `json:"model"`
	Success      bool          `json:"success"`
	ErrorMessage string        `json:"error_message,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

type ExecutionLog struct {
	ID            string          `json:"_id"`
	UserID        string          `json:"user_id"`
	GenerationID  string          `json:"code_generation_id,omitempty"`
	Code          string          `json:"code"`
	Language      string          `json:"language"`
	Output        string          `json:"output,omitempty"`
	Error         string          `json:"error,omitempty"`
	ExecutionTime float64         `json:"execution_time,omitempty"` // milliseconds
	Status        ExecutionStatus `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Request struct {
	ID           string            `json:"_id"`
	UserID       string            `json:"user_id"`
	RequestType  string            `json:"request_type"` // code_generation, code_review, execution
	Status       RequestStatus     `json:"status"`
	Data         map[string]string `json:"data,omitempty"`
	ResultID     string            `json:"result_id,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Classification is the result of intent classification.
type Classification struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// Page is a single page of a listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatPDF      ResultFormat = "pdf"
	FormatDOCX     ResultFormat = "docx"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatPDF, FormatDOCX:
		return true
	default:
		return false
	}
}
