package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/prepwise/interview-engine/internal/analysis"
	"github.com/prepwise/interview-engine/internal/errors"
	"github.com/prepwise/interview-engine/internal/types"
)

const defaultGeminiModel = "gemini-1.5-flash"

// Evaluator grades one text answer and generates interview question sets.
// The raw evaluation it returns is opaque provider output; callers run it
// through analysis.PostProcessEvaluation before use.
type Evaluator interface {
	EvaluateResponse(ctx context.Context, q types.QuestionAnswer) (analysis.QuestionEvaluation, error)
	GenerateQuestions(ctx context.Context, role string, count int) ([]types.GeneratedQuestion, error)
	Close() error
}

// GeminiEvaluator implements Evaluator on the Gemini generative-language API.
type GeminiEvaluator struct {
	client *genai.Client
	model  string
}

// NewGeminiEvaluator creates a Gemini-backed evaluator.
func NewGeminiEvaluator(ctx context.Context, apiKey, model string) (*GeminiEvaluator, error) {
	if apiKey == "" {
		return nil, errors.NewConfigurationError("Gemini API key is required", nil)
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.NewConfigurationError("failed to create Gemini client", err)
	}

	return &GeminiEvaluator{client: client, model: model}, nil
}

// Close releases resources held by the client.
func (g *GeminiEvaluator) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// EvaluateResponse asks the model to grade one answer on the four criteria.
// Low temperature keeps scoring consistent across runs.
func (g *GeminiEvaluator) EvaluateResponse(ctx context.Context, q types.QuestionAnswer) (analysis.QuestionEvaluation, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.1)
	model.SetTopK(20)
	model.SetTopP(0.6)
	model.SetMaxOutputTokens(1024)
	model.ResponseMIMEType = "application/json"

	prompt := evaluationPrompt(q)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return analysis.QuestionEvaluation{}, errors.NewProviderError("Gemini", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return analysis.QuestionEvaluation{}, errors.NewProviderError("Gemini", err)
	}

	var eval analysis.QuestionEvaluation
	if err := json.Unmarshal([]byte(extractJSONObject(text)), &eval); err != nil {
		return analysis.QuestionEvaluation{}, errors.NewProviderError("Gemini",
			fmt.Errorf("invalid JSON in evaluation response: %w", err))
	}

	return eval, nil
}

// GenerateQuestions asks the model for a question set for the given role.
func (g *GeminiEvaluator) GenerateQuestions(ctx context.Context, role string, count int) ([]types.GeneratedQuestion, error) {
	model := g.client.GenerativeModel(g.model)
	model.SetTemperature(0.7)
	model.ResponseMIMEType = "application/json"

	prompt := fmt.Sprintf(`You are an expert technical interviewer. Generate %d interview questions for a %s candidate.
Mix technical, behavioral and system design categories.
Return only a JSON array of objects with this shape:
[{"id": 1, "question": "...", "category": "Technical"}]`, count, role)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, errors.NewProviderError("Gemini", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return nil, errors.NewProviderError("Gemini", err)
	}

	var questions []types.GeneratedQuestion
	if err := json.Unmarshal([]byte(extractJSONArray(text)), &questions); err != nil {
		return nil, errors.NewProviderError("Gemini",
			fmt.Errorf("invalid JSON in question response: %w", err))
	}
	if len(questions) == 0 {
		return nil, errors.NewProviderError("Gemini", fmt.Errorf("empty question set"))
	}

	return questions, nil
}

// evaluationPrompt instructs harsh scoring with the exact JSON shape the
// scoring core consumes. The post-processing caps in the analysis package do
// not depend on the model honoring the strictness instructions.
func evaluationPrompt(q types.QuestionAnswer) string {
	return fmt.Sprintf(`You are an extremely harsh and unforgiving expert technical interviewer with exceptionally high standards, evaluating with the strictness of a senior principal engineer interview. Your default assumption is that responses are inadequate unless they demonstrate exceptional mastery.

Question Category: %s
Question: %s
Candidate Response: %s

Scoring guidelines - be ruthless:
- Generic answers without concrete examples: maximum 20 points
- Answers missing crucial technical depth: maximum 25 points
- Adequate but unremarkable answers: maximum 45-55 points
- Only responses showing deep expertise and innovation should exceed 60 points
- Scores above 85 should be extremely rare

Evaluate Relevance, Structure & Clarity, Completeness and Technical Correctness, each 0-100 with a short comment. Responses must demonstrate deep technical understanding with specific examples; technical accuracy must be perfect.

Return your evaluation in the following JSON format only (no additional text):

{
  "relevance": { "score": 0, "comment": "..." },
  "structureAndClarity": { "score": 0, "comment": "..." },
  "completeness": { "score": 0, "comment": "..." },
  "technicalCorrectness": { "score": 0, "comment": "..." },
  "overallSummary": "Brief summary of the candidate's performance on this question",
  "overallScore": 0
}`, q.Category, q.Question, q.Response)
}

// extractText flattens the first candidate's text parts.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// extractJSONObject strips markdown fences and anything outside the outermost
// braces.
func extractJSONObject(text string) string {
	text = stripFences(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

func extractJSONArray(text string) string {
	text = stripFences(text)
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

func stripFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
