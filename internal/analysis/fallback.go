package analysis

// FallbackCommunicationAnalysis is the fixed low-score entry substituted when
// the speech provider fails entirely for a question. The literal values are
// part of the report contract; callers must use this instead of composing a
// score from partial data.
func FallbackCommunicationAnalysis(errMsg string) CommunicationAnalysis {
	return CommunicationAnalysis{
		Tone: ToneResult{
			Score:      15,
			Assessment: "unacceptable - analysis failed",
			Details:    "Unable to analyze tone due to processing error",
		},
		Confidence: ConfidenceResult{
			Score:      10,
			Assessment: "unacceptable - analysis failed",
		},
		Hesitation: HesitationResult{
			Level:   "unacceptable - analysis failed",
			Count:   0,
			Rate:    0,
			Details: []string{},
		},
		Pauses: PauseResult{
			Quality:    10,
			Assessment: "unacceptable - analysis failed",
			Details:    "Unable to analyze pauses",
		},
		OverallScore: 12,
		Summary:      "Analysis failed. Audio could not be processed properly. Score reflects technical failure.",
		Error:        errMsg,
	}
}

// FallbackEvaluation is the fixed low-score evaluation substituted when the
// text grader fails for a question. Scores reflect the service failure, not
// the answer.
func FallbackEvaluation(errMsg string) QuestionEvaluation {
	return QuestionEvaluation{
		Relevance: CriterionScore{
			Score:   5,
			Comment: "Unable to analyze due to service error - severe technical failure",
		},
		StructureAndClarity: CriterionScore{
			Score:   5,
			Comment: "Unable to analyze due to service error - technical issue",
		},
		Completeness: CriterionScore{
			Score:   5,
			Comment: "Unable to analyze due to service error - analysis unavailable",
		},
		TechnicalCorrectness: CriterionScore{
			Score:   5,
			Comment: "Unable to analyze due to service error - no evaluation possible",
		},
		OverallSummary: "Analysis completely unavailable due to critical technical issues. Score reflects service failure.",
		OverallScore:   5,
		Error:          errMsg,
	}
}
