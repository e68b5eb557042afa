package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ertan/cvscout/internal/domain"
	"github.com/ertan/cvscout/internal/prompts"
)

// Client is the structured-extraction client. It drives an OpenAI-compatible
// chat-completions endpoint and parses the model's answer into one of the
// supported schemas (Resume, RelevancyAnalysis, GeneratedEmail).
type Client struct {
	client     *resty.Client
	model      string
	emailModel string
	endpoint   string
}

// Config holds configuration for the extraction client.
type Config struct {
	Model      string
	EmailModel string
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
}

// New creates a new extraction client.
// Parameters:
//   - cfg: client configuration including model, API key, and base URL.
//
// Returns:
//   - *Client: initialized client.
func New(cfg *Config) *Client {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")

	// Bounded timeout on every call to prevent hanging requests
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client.SetTimeout(timeout)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	emailModel := cfg.EmailModel
	if emailModel == "" {
		emailModel = cfg.Model
	}

	return &Client{
		client:     client,
		model:      cfg.Model,
		emailModel: emailModel,
		endpoint:   baseURL + "/chat/completions",
	}
}

// Model returns the model name used for extraction and analysis.
func (c *Client) Model() string {
	return c.model
}

// OpenAI-compatible Chat Completion API request/response structures
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// chat performs one chat-completion round trip and returns the raw content.
func (c *Client) chat(ctx context.Context, model, system, user string, maxTokens int, temperature float32) (string, error) {
	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	var resp chatResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(c.endpoint)

	if err != nil {
		return "", fmt.Errorf("failed to call LLM API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		errorMsg := fmt.Sprintf("HTTP %d", httpResp.StatusCode())
		if resp.Error != nil {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		} else if len(httpResp.Body()) > 0 {
			errorMsg = fmt.Sprintf("HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
		}
		return "", fmt.Errorf("LLM API returned error: %s", errorMsg)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("LLM API error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no response from LLM API (status: %d)", httpResp.StatusCode())
	}

	return resp.Choices[0].Message.Content, nil
}

// ExtractResume extracts a structured Resume from raw document text.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - text: raw resume text.
//
// Returns:
//   - *domain.Resume: parsed resume with list fields normalized to non-nil.
//   - error: non-nil if the call or parsing fails.
func (c *Client) ExtractResume(ctx context.Context, text string) (*domain.Resume, error) {
	content, err := c.chat(ctx, c.model, prompts.ResumeExtractionSystemPrompt, text, 2000, 0.2)
	if err != nil {
		return nil, err
	}

	jsonStr, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var resume domain.Resume
	if err := json.Unmarshal([]byte(jsonStr), &resume); err != nil {
		return nil, fmt.Errorf("failed to parse resume JSON: %w", err)
	}

	normalizeResume(&resume)
	if err := validateResume(&resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

// AnalyzeRelevancy scores a standardized report against a job description.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobDescription: the job description text.
//   - report: the standardized candidate report.
//
// Returns:
//   - *domain.RelevancyAnalysis: score in [0,100] and summary.
//   - error: non-nil if the call or parsing fails.
func (c *Client) AnalyzeRelevancy(ctx context.Context, jobDescription string, report *domain.Report) (*domain.RelevancyAnalysis, error) {
	reportJSON, err := report.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}

	var user strings.Builder
	user.WriteString("## JOB DESCRIPTION\n")
	user.WriteString(jobDescription)
	user.WriteString("\n\n## CANDIDATE REPORT\n")
	user.WriteString(reportJSON)

	content, err := c.chat(ctx, c.model, prompts.RelevancyAnalysisSystemPrompt, user.String(), 400, 0.2)
	if err != nil {
		return nil, err
	}

	jsonStr, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var analysis domain.RelevancyAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis JSON: %w", err)
	}

	clampAnalysis(&analysis)
	return &analysis, nil
}

// GenerateEmail produces subject and body for one candidate.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobTitle: the role the email refers to.
//   - candidateName: the candidate's full name.
//   - disposition: selects the invitation or rejection prompt variant.
//
// Returns:
//   - *domain.GeneratedEmail: generated subject and body.
//   - error: non-nil if the call or parsing fails, or the disposition is unknown.
func (c *Client) GenerateEmail(ctx context.Context, jobTitle, candidateName string, disposition domain.Disposition) (*domain.GeneratedEmail, error) {
	var system string
	switch disposition {
	case domain.DispositionPositive:
		system = prompts.InviteEmailSystemPrompt
	case domain.DispositionNegative:
		system = prompts.RejectEmailSystemPrompt
	default:
		return nil, fmt.Errorf("unknown disposition: %q", disposition)
	}

	user := fmt.Sprintf("Role: %s\nCandidate name: %s", jobTitle, candidateName)

	content, err := c.chat(ctx, c.emailModel, system, user, 600, 0.7)
	if err != nil {
		return nil, err
	}

	jsonStr, err := extractJSON(content)
	if err != nil {
		return nil, err
	}

	var email domain.GeneratedEmail
	if err := json.Unmarshal([]byte(jsonStr), &email); err != nil {
		return nil, fmt.Errorf("failed to parse email JSON: %w", err)
	}

	if email.Subject == "" || email.Body == "" {
		return nil, fmt.Errorf("incomplete email in response")
	}
	return &email, nil
}

// extractJSON locates the first complete JSON object in the model output.
// Models occasionally wrap the object in prose or code fences; brace
// matching tolerates both.
func extractJSON(content string) (string, error) {
	jsonStart := strings.Index(content, "{")
	if jsonStart == -1 {
		return "", fmt.Errorf("no JSON found in response")
	}

	braceCount := 0
	inString := false
	escaped := false
	for i := jsonStart; i < len(content); i++ {
		ch := content[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				braceCount++
			}
		case '}':
			if !inString {
				braceCount--
				if braceCount == 0 {
					return content[jsonStart : i+1], nil
				}
			}
		}
	}

	return "", fmt.Errorf("incomplete JSON in response")
}

// normalizeResume replaces nil list fields with empty slices so callers can
// range without nil checks and persisted JSON always carries the lists.
func normalizeResume(r *domain.Resume) {
	if r.Education == nil {
		r.Education = []domain.Education{}
	}
	if r.Experience == nil {
		r.Experience = []domain.Experience{}
	}
	if r.TechnicalSkills == nil {
		r.TechnicalSkills = []string{}
	}
	if r.Languages == nil {
		r.Languages = []string{}
	}
}

// validateResume enforces the required-field contract of the Resume schema.
func validateResume(r *domain.Resume) error {
	if strings.TrimSpace(r.FullName) == "" {
		return fmt.Errorf("resume missing required field: full_name")
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("resume missing required field: email")
	}
	return nil
}

// clampAnalysis forces the score into [0,100].
func clampAnalysis(a *domain.RelevancyAnalysis) {
	if a.Score < 0 {
		a.Score = 0
	}
	if a.Score > 100 {
		a.Score = 100
	}
}
