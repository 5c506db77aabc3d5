// Package validation checks the shape of inbound payloads and raw provider
// outputs before they reach the scoring pipeline. Checks are pure: no side
// effects, no mutation of the input.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/prepwise/interview-engine/internal/analysis"
	apperrors "github.com/prepwise/interview-engine/internal/errors"
	"github.com/prepwise/interview-engine/internal/types"
)

// Result lists what was missing or malformed. An empty Errors slice means the
// payload is structurally valid.
type Result struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors,omitempty"`
}

func newResult(errs []string) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Validator performs provider-result and request validation.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// ValidateInterviewPayload checks the text-analysis request. Structurally
// required fields are interviewId, sessionId, totalQuestions and a non-empty
// analysis array whose items each carry questionId, question, category and
// response.
func (v *Validator) ValidateInterviewPayload(req types.InterviewAnalysisRequest) Result {
	var errs []string

	if req.InterviewID == "" {
		errs = append(errs, "interviewId is required")
	}
	if req.SessionID == "" {
		errs = append(errs, "sessionId is required")
	}
	if req.TotalQuestions <= 0 {
		errs = append(errs, "totalQuestions must be a positive number")
	}

	if len(req.Analysis) == 0 {
		errs = append(errs, "analysis must be a non-empty array")
		return newResult(errs)
	}

	for i, item := range req.Analysis {
		if err := v.validate.Struct(item); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					errs = append(errs, fmt.Sprintf("analysis[%d]: %s is required", i, jsonFieldName(fe.Field())))
				}
			} else {
				errs = append(errs, fmt.Sprintf("analysis[%d]: %v", i, err))
			}
		}
		if msg := freeTextError(item.Question); msg != "" {
			errs = append(errs, fmt.Sprintf("analysis[%d]: question %s", i, msg))
		}
		if msg := freeTextError(item.Response); msg != "" {
			errs = append(errs, fmt.Sprintf("analysis[%d]: response %s", i, msg))
		}
	}

	return newResult(errs)
}

// ValidateTranscription checks a raw transcription payload. Words and
// sentiment spans are optional metadata; the analyzer degrades gracefully
// without them. Malformed word timing is a structural error.
func (v *Validator) ValidateTranscription(tr analysis.TranscriptionResult) Result {
	var errs []string

	if tr.AudioDuration < 0 {
		errs = append(errs, "audio_duration must not be negative")
	}

	for i, w := range tr.Words {
		if w.Text == "" {
			errs = append(errs, fmt.Sprintf("words[%d]: text is required", i))
		}
		if w.End < w.Start {
			errs = append(errs, fmt.Sprintf("words[%d]: end precedes start", i))
		}
		if w.Confidence < 0 || w.Confidence > 1 {
			errs = append(errs, fmt.Sprintf("words[%d]: confidence out of range", i))
		}
	}

	for i, s := range tr.Sentiments {
		switch s.Sentiment {
		case "POSITIVE", "NEUTRAL", "NEGATIVE":
		default:
			errs = append(errs, fmt.Sprintf("sentiment_analysis_results[%d]: unknown sentiment %q", i, s.Sentiment))
		}
	}

	return newResult(errs)
}

// ValidateEvaluation checks a raw AI evaluation payload before
// post-processing. All four criteria and the overall score must be present
// and within 0-100.
func (v *Validator) ValidateEvaluation(eval analysis.QuestionEvaluation) Result {
	var errs []string

	check := func(name string, c analysis.CriterionScore) {
		if c.Score < 0 || c.Score > 100 {
			errs = append(errs, fmt.Sprintf("%s.score out of range", name))
		}
	}
	check("relevance", eval.Relevance)
	check("structureAndClarity", eval.StructureAndClarity)
	check("completeness", eval.Completeness)
	check("technicalCorrectness", eval.TechnicalCorrectness)

	if eval.OverallScore < 0 || eval.OverallScore > 100 {
		errs = append(errs, "overallScore out of range")
	}

	return newResult(errs)
}

// RequireValid converts a failed Result into the fail-fast ValidationError.
func RequireValid(r Result, what string) error {
	if r.Valid {
		return nil
	}
	return apperrors.NewValidationError(fmt.Sprintf("invalid %s", what), r.Errors...)
}

// freeTextError rejects free-text content the scorers cannot safely handle:
// embedded NUL bytes and byte sequences that are not valid UTF-8.
func freeTextError(text string) string {
	if strings.Contains(text, "\x00") {
		return "contains invalid characters"
	}
	if !utf8.ValidString(text) {
		return "is not valid UTF-8"
	}
	return ""
}

// jsonFieldName maps struct field names to their wire names for error
// messages.
func jsonFieldName(field string) string {
	switch field {
	case "QuestionID":
		return "questionId"
	case "Question":
		return "question"
	case "Category":
		return "category"
	case "Response":
		return "response"
	default:
		return field
	}
}
