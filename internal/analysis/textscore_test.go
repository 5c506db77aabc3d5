package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func rawEvaluation(score int) QuestionEvaluation {
	return QuestionEvaluation{
		Relevance:            CriterionScore{Score: score, Comment: "Relevant answer."},
		StructureAndClarity:  CriterionScore{Score: score, Comment: "Well structured."},
		Completeness:         CriterionScore{Score: score, Comment: "Covers the question."},
		TechnicalCorrectness: CriterionScore{Score: score, Comment: "Technically sound."},
		OverallSummary:       "Strong answer overall.",
		OverallScore:         score,
	}
}

func TestPostProcessGenericResponse(t *testing.T) {
	// A one-word acknowledgement is capped at 3 regardless of what the
	// grader returned.
	result := PostProcessEvaluation(rawEvaluation(90), "good", "behavioral")

	assert.LessOrEqual(t, result.OverallScore, 3)
	assert.LessOrEqual(t, result.Relevance.Score, 3)
	assert.LessOrEqual(t, result.StructureAndClarity.Score, 3)
	assert.LessOrEqual(t, result.Completeness.Score, 3)
	assert.LessOrEqual(t, result.TechnicalCorrectness.Score, 3)
	assert.Contains(t, result.OverallSummary, "Completely unacceptable response.")
}

func TestPostProcessIrrelevantResponse(t *testing.T) {
	result := PostProcessEvaluation(rawEvaluation(85), "answer to question number three", "general")

	assert.LessOrEqual(t, result.OverallScore, 3)
	assert.Equal(t, "Response is completely irrelevant to the question.", result.Relevance.Comment)
	assert.Contains(t, result.OverallSummary, "irrelevant content")
}

func TestPostProcessWordCountTiers(t *testing.T) {
	// "for example" keeps the specificity penalty out of the way so the
	// tiers are observed in isolation. The category avoids the
	// technical-terminology cap.
	tests := []struct {
		name            string
		repeats         int
		expectedOverall int
	}{
		{name: "12 words caps at 8", repeats: 2, expectedOverall: 7},
		{name: "27 words caps at 15", repeats: 5, expectedOverall: 13},
		{name: "57 words caps at 30", repeats: 11, expectedOverall: 26},
		{name: "97 words caps at 50", repeats: 19, expectedOverall: 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := "for example " + strings.TrimSpace(strings.Repeat("talking broadly about varied topics ", tt.repeats))

			result := PostProcessEvaluation(rawEvaluation(90), response, "general")
			assert.Equal(t, tt.expectedOverall, result.OverallScore)
		})
	}
}

func TestPostProcessLongAnswerCaps(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("we explored the question thoroughly and covered everything asked today ", 13))

	// 130 words with a high raw overall lands in the under-150 ceiling.
	result := PostProcessEvaluation(rawEvaluation(90), long, "general")

	assert.Equal(t, 47, result.OverallScore) // min(90, 55) then 0.85
	assert.Contains(t, result.OverallSummary, "insufficient detail and depth")

	// 160 words moves to the under-200 ceiling.
	longer := strings.TrimSpace(strings.Repeat("we explored the question thoroughly and covered everything asked today ", 16))
	result = PostProcessEvaluation(rawEvaluation(90), longer, "general")

	assert.Equal(t, 55, result.OverallScore) // min(90, 65) then 0.85
}

func TestPostProcessSpecificityPenalty(t *testing.T) {
	// 45 words, no specificity tokens: completeness and overall are
	// additionally capped before the global reduction.
	response := strings.TrimSpace(strings.Repeat("we discussed broad general topics during our conversation today friends ", 4)) + " extra five more words here now"

	result := PostProcessEvaluation(rawEvaluation(90), response, "general")

	assert.LessOrEqual(t, result.Completeness.Score, 21) // min(cap 30, 25) then 0.85
	assert.LessOrEqual(t, result.OverallScore, 26)
	assert.Contains(t, result.OverallSummary, "lack of specific examples")
}

func TestPostProcessTechnicalCategoryPenalty(t *testing.T) {
	// 25 plain words with no technical vocabulary in a technical
	// category.
	response := "For example we talked broadly about many things and covered several topics in our meeting today while sharing thoughts openly and honestly with everyone present"

	result := PostProcessEvaluation(rawEvaluation(90), response, "technical")

	assert.Equal(t, 10, result.TechnicalCorrectness.Score) // min(15, 12) then 0.85
	assert.Equal(t, 13, result.OverallScore)               // min(15, 20) then 0.85
	assert.Contains(t, result.OverallSummary, "lack of technical terminology")
}

func TestPostProcessNeverIncreasesScores(t *testing.T) {
	responses := []string{
		"good",
		"for example we talked about things",
		strings.TrimSpace(strings.Repeat("detailed discussion such as concrete cases with full context given here ", 15)),
	}

	for _, response := range responses {
		raw := rawEvaluation(88)
		result := PostProcessEvaluation(raw, response, "general")

		assert.LessOrEqual(t, result.Relevance.Score, raw.Relevance.Score)
		assert.LessOrEqual(t, result.StructureAndClarity.Score, raw.StructureAndClarity.Score)
		assert.LessOrEqual(t, result.Completeness.Score, raw.Completeness.Score)
		assert.LessOrEqual(t, result.TechnicalCorrectness.Score, raw.TechnicalCorrectness.Score)
		assert.LessOrEqual(t, result.OverallScore, raw.OverallScore)
	}
}

func TestPostProcessDeterministic(t *testing.T) {
	raw := rawEvaluation(75)
	response := "for example we use caching in front of the primary store to keep latency low under load"

	assert.Equal(t,
		PostProcessEvaluation(raw, response, "technical"),
		PostProcessEvaluation(raw, response, "technical"))
}
