package entity

import "time"

type CreateSessionRequest struct {
	UserID   string            `json:"user_id"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type ProcessContextRequest struct {
	ContextText string `json:"context_text"`
	Model       string `json:"model,omitempty"`
	Language    string `json:"language,omitempty"`
}

type ProcessPromptRequest struct {
	Prompt   string `json:"prompt"`
	Model    string `json:"model,omitempty"`
	Language string `json:"language,omitempty"`
}

type SessionMessageRequest struct {
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

// AgentResponse is the uniform reply of the orchestration endpoints. A failed
// step reports which step it was and the underlying message; prior completed
// steps' writes are not undone.
type AgentResponse struct {
	SessionID     string       `json:"session_id"`
	CurrentStep   WorkflowStep `json:"current_step"`
	Intent        Intent       `json:"intent,omitempty"`
	NextQuestion  string       `json:"next_question,omitempty"`
	Requirement   *Requirement `json:"requirement,omitempty"`
	GeneratedCode string       `json:"generated_code,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
	CodeAnalysis  string       `json:"code_analysis,omitempty"`
	Success       bool         `json:"success"`
	Message       string       `json:"message,omitempty"`
	ErrorMessage  string       `json:"error_message,omitempty"`
	Timestamp     time.Time    `json:"timestamp"`
}

type SessionDTO struct {
	ID          string       `json:"session_id"`
	UserID      string       `json:"user_id"`
	CurrentStep WorkflowStep `json:"current_step"`
	Requirement *Requirement `json:"requirement,omitempty"`
	CodeHistory []CodeEntry  `json:"code_history"`
	LastIntent  Intent       `json:"last_intent,omitempty"`
	LastPrompt  string       `json:"last_prompt,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type GenerateCodeRequest struct {
	UserID            string `json:"user_id"`
	Prompt            string `json:"prompt"`
	Language          string `json:"language"`
	Framework         string `json:"framework,omitempty"`
	AdditionalContext string `json:"additional_context,omitempty"`
	Model             string `json:"model,omitempty"`
}

type GenerateCodeResponse struct {
	ID            string    `json:"_id"`
	GeneratedCode string    `json:"generated_code"`
	Explanation   string    `json:"explanation"`
	Language      string    `json:"language"`
	Model         string    `json:"model"`
	Success       bool      `json:"success"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type ReviewCodeRequest struct {
	UserID       string `json:"user_id"`
	GenerationID string `json:"code_generation_id,omitempty"`
	Code         string `json:"code"`
	Language     string `json:"language"`
	ReviewType   string `json:"review_type,omitempty"`
	Model        string `json:"model,omitempty"`
}

type ReviewCodeResponse struct {
	ID           string        `json:"_id"`
	OverallScore float64       `json:"overall_score"`
	Issues       []ReviewIssue `json:"issues"`
	Summary      string        `json:"summary"`
	Improvements []string      `json:"improvements"`
	Success      bool          `json:"success"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Timestamp    time.Time     `json:"timestamp"`
}

type ClassifyIntentRequest struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"session_id,omitempty"`
	Model     string `json:"model,omitempty"`
}

type CreateConversationRequest struct {
	Title string `json:"title"`
	Goal  string `json:"goal,omitempty"`
}

type UpdateConversationRequest struct {
	Title string   `json:"title,omitempty"`
	Goal  string   `json:"goal,omitempty"`
	Facts []string `json:"facts,omitempty"`
}

type SendMessageRequest struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
	Type   string `json:"type,omitempty"`
}

type CreateExecutionLogRequest struct {
	UserID        string          `json:"user_id"`
	GenerationID  string          `json:"code_generation_id,omitempty"`
	Code          string          `json:"code"`
	Language      string          `json:"language"`
	Output        string          `json:"output,omitempty"`
	Error         string          `json:"error,omitempty"`
	ExecutionTime float64         `json:"execution_time,omitempty"`
	Status        ExecutionStatus `json:"status,omitempty"`
}

type CreateRequestRecord struct {
	UserID      string            `json:"user_id"`
	RequestType string            `json:"request_type"`
	Data        map[string]string `json:"data,omitempty"`
}

type UpdateRequestStatus struct {
	Status       RequestStatus `json:"status"`
	ResultID     string        `json:"result_id,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
