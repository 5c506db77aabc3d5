package analysis

import (
	"fmt"
	"math"
	"strings"
)

// Filler responses that mark an answer as irrelevant regardless of length.
var irrelevantPhrases = []string{
	"answer", "pulsar", "i said", "answer to", "answer one", "answer 3",
	"answer free", "sirpur", "answer it", "answer 5", "answer 6", "answer 7",
}

// Generic one-word acknowledgements.
var genericWords = []string{
	"good", "nice", "ok", "yes", "no", "maybe", "sure", "fine", "well",
	"great", "bad", "right", "wrong", "true", "false",
}

var specificityTokens = []string{"example", "specific", "such as", "like"}

var technicalTerms = []string{
	"algorithm", "database", "api", "framework", "architecture", "design",
	"pattern", "optimization", "performance", "security", "scalability",
	"complexity", "data structure", "implementation", "protocol", "interface",
	"module", "component", "service",
}

var technicalCategories = []string{"technical", "algorithm", "system", "coding"}

// Global reduction applied to every corrected score after all caps.
const globalReduction = 0.85

// PostProcessEvaluation corrects a raw AI evaluation against the response it
// graded. Scores are only ever decreased. The cap chain is order-sensitive;
// the order below is the contract.
func PostProcessEvaluation(eval QuestionEvaluation, response, category string) QuestionEvaluation {
	lower := strings.ToLower(strings.TrimSpace(response))
	wordCount := len(strings.Fields(lower))

	switch {
	case wordCount <= 8 || isIrrelevant(lower) || isGeneric(lower):
		relevanceComment := "Response is unacceptably short and demonstrates no understanding whatsoever."
		summaryReason := "an extremely inadequate answer"
		if isIrrelevant(lower) {
			relevanceComment = "Response is completely irrelevant to the question."
			summaryReason = "irrelevant content"
		}
		eval = capAll(eval, 3)
		eval.Relevance.Comment = relevanceComment
		eval.StructureAndClarity.Comment = "No structure, organization, or coherent explanation provided."
		eval.Completeness.Comment = "Response is completely incomplete and fails to address any aspect of the question."
		eval.TechnicalCorrectness.Comment = "No technical understanding, knowledge, or competence demonstrated."
		eval.OverallSummary = fmt.Sprintf("Completely unacceptable response. The candidate shows no understanding and provided %s.", summaryReason)

	case wordCount <= 20:
		eval = capAll(eval, 8)
		eval.Relevance.Comment = "Response is far too brief to adequately address any aspect of the question."
		eval.StructureAndClarity.Comment = "Response lacks any meaningful structure, detail, or clear explanation."
		eval.Completeness.Comment = "Response is woefully incomplete and fails to cover any important aspects."
		eval.TechnicalCorrectness.Comment = "Completely insufficient content to evaluate any technical understanding."
		eval.OverallSummary = fmt.Sprintf("Severely inadequate response (%d words). Candidate demonstrates no meaningful understanding or effort.", wordCount)

	case wordCount <= 40:
		eval = capAll(eval, 15)
		eval.Relevance.Comment = "Response is too brief to demonstrate adequate understanding."
		eval.StructureAndClarity.Comment = "Response severely lacks structure, detail, and comprehensive explanation."
		eval.Completeness.Comment = "Response is far too brief to comprehensively address the question requirements."
		eval.TechnicalCorrectness.Comment = "Minimal technical content prevents proper evaluation of competence."
		eval.OverallSummary = fmt.Sprintf("Inadequate response length (%d words). Lacks depth, detail, and demonstrates insufficient effort.", wordCount)

	case wordCount <= 80:
		eval = capAll(eval, 30)
		eval.Relevance.Comment += " Response needs significantly more depth."
		eval.StructureAndClarity.Comment = "Response shows basic organization but lacks professional-level detail and clarity."
		eval.Completeness.Comment = "Response provides minimal coverage and lacks comprehensive detail expected."
		eval.TechnicalCorrectness.Comment += " Needs more technical sophistication."
		eval.OverallSummary = fmt.Sprintf("Below-average response (%d words) lacks the depth and comprehensive coverage expected.", wordCount)

	case wordCount <= 120:
		eval = capAll(eval, 50)
		eval.Completeness.Comment = "Response provides basic coverage but still lacks comprehensive detail and depth."
		eval.OverallSummary = fmt.Sprintf("Adequate response (%d words) but still lacks the depth and technical sophistication expected.", wordCount)

	default:
		if eval.OverallScore > 70 {
			if wordCount < 150 {
				eval.OverallScore = min(eval.OverallScore, 55)
				eval.OverallSummary += " Score significantly reduced due to insufficient detail and depth."
			} else if wordCount < 200 {
				eval.OverallScore = min(eval.OverallScore, 65)
				eval.OverallSummary += " Score reduced due to lack of comprehensive technical depth."
			}
		}
	}

	if lacksSpecifics(lower, wordCount) {
		eval.Completeness.Score = min(eval.Completeness.Score, 25)
		eval.OverallScore = min(eval.OverallScore, 35)
		eval.OverallSummary += " Severely penalized for lack of specific examples and concrete details."
	}

	if isTechnicalCategory(category) && !containsAny(lower, technicalTerms) && wordCount > 8 {
		eval.TechnicalCorrectness.Score = min(eval.TechnicalCorrectness.Score, 12)
		eval.OverallScore = min(eval.OverallScore, 20)
		eval.OverallSummary += " Severely penalized for complete lack of technical terminology and concepts."
	}

	eval.Relevance.Score = reduce(eval.Relevance.Score)
	eval.StructureAndClarity.Score = reduce(eval.StructureAndClarity.Score)
	eval.Completeness.Score = reduce(eval.Completeness.Score)
	eval.TechnicalCorrectness.Score = reduce(eval.TechnicalCorrectness.Score)
	eval.OverallScore = reduce(eval.OverallScore)

	return eval
}

func isIrrelevant(lower string) bool {
	for _, phrase := range irrelevantPhrases {
		if lower == phrase || strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// isGeneric flags exact generic acknowledgements and anything of four tokens
// or fewer.
func isGeneric(lower string) bool {
	if len(strings.Fields(lower)) <= 4 {
		return true
	}
	for _, w := range genericWords {
		if lower == w {
			return true
		}
	}
	return false
}

func lacksSpecifics(lower string, wordCount int) bool {
	return !containsAny(lower, specificityTokens) && wordCount < 50
}

func isTechnicalCategory(category string) bool {
	return containsAny(strings.ToLower(category), technicalCategories)
}

func capAll(eval QuestionEvaluation, cap int) QuestionEvaluation {
	eval.Relevance.Score = min(eval.Relevance.Score, cap)
	eval.StructureAndClarity.Score = min(eval.StructureAndClarity.Score, cap)
	eval.Completeness.Score = min(eval.Completeness.Score, cap)
	eval.TechnicalCorrectness.Score = min(eval.TechnicalCorrectness.Score, cap)
	eval.OverallScore = min(eval.OverallScore, cap)
	return eval
}

func reduce(score int) int {
	return int(math.Round(float64(score) * globalReduction))
}
