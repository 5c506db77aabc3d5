package analysis

// Word is a single token from the transcription provider with millisecond
// timing and a 0-1 recognition confidence.
type Word struct {
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Confidence float64 `json:"confidence"`
}

// Sentiment is one span-level sentiment classification from the provider.
// Sentiment is one of POSITIVE, NEUTRAL or NEGATIVE.
type Sentiment struct {
	Sentiment string `json:"sentiment"`
	Text      string `json:"text,omitempty"`
}

// TranscriptionResult is the immutable provider output for one audio answer.
type TranscriptionResult struct {
	Text          string      `json:"text"`
	Words         []Word      `json:"words"`
	AudioDuration float64     `json:"audio_duration"`
	Sentiments    []Sentiment `json:"sentiment_analysis_results"`
}

// SpeechMetrics holds the derived per-answer speech measurements. All score
// fields are on a 0-100 scale except HesitationRate, which is a percentage of
// words that were hesitation markers.
type SpeechMetrics struct {
	HesitationRate    float64
	HesitationCount   int
	AverageConfidence float64
	PauseQuality      float64
	ToneScore         float64

	Hesitations      []string
	PauseDetails     string
	SentimentDetails string
}

// ToneResult reports tone scoring for one answer.
type ToneResult struct {
	Score      float64 `json:"score"`
	Assessment string  `json:"assessment"`
	Details    string  `json:"details"`
}

// ConfidenceResult reports recognition-confidence scoring for one answer.
type ConfidenceResult struct {
	Score      float64 `json:"score"`
	Assessment string  `json:"assessment"`
}

// HesitationResult reports hesitation-marker analysis for one answer.
type HesitationResult struct {
	Level   string   `json:"level"`
	Count   int      `json:"count"`
	Rate    float64  `json:"rate"`
	Details []string `json:"details"`
}

// PauseResult reports inter-word pause analysis for one answer.
type PauseResult struct {
	Quality    float64 `json:"quality"`
	Assessment string  `json:"assessment"`
	Details    string  `json:"details"`
}

// CommunicationAnalysis is the per-question speech assessment produced by
// ComposeCommunication. OverallScore is always the output of the composition
// formula over the four metrics, never stored independently.
type CommunicationAnalysis struct {
	Tone         ToneResult       `json:"tone"`
	Confidence   ConfidenceResult `json:"confidence"`
	Hesitation   HesitationResult `json:"hesitation"`
	Pauses       PauseResult      `json:"pauses"`
	OverallScore int              `json:"overall_score"`
	Summary      string           `json:"summary"`
	Error        string           `json:"error,omitempty"`
}

// CriterionScore is one scored evaluation criterion with the grader's comment.
type CriterionScore struct {
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// QuestionEvaluation is the AI grader's output for one text answer. It is
// corrected exactly once by PostProcessEvaluation; the corrected value is
// final. A non-empty Error marks a failed provider call whose scores are the
// fixed fallback literals.
type QuestionEvaluation struct {
	Relevance            CriterionScore `json:"relevance"`
	StructureAndClarity  CriterionScore `json:"structureAndClarity"`
	Completeness         CriterionScore `json:"completeness"`
	TechnicalCorrectness CriterionScore `json:"technicalCorrectness"`
	OverallSummary       string         `json:"overallSummary"`
	OverallScore         int            `json:"overallScore"`
	Error                string         `json:"error,omitempty"`
}

// ScoredQuestion pairs a corrected evaluation with the question it graded,
// which the report generator cites in strengths and weaknesses.
type ScoredQuestion struct {
	QuestionID int                `json:"questionId"`
	Question   string             `json:"question"`
	Category   string             `json:"category"`
	Evaluation QuestionEvaluation `json:"aiAnalysis"`
}

// InterviewReport is the aggregate produced once per completed interview.
// All headline scores are capped at 95.
type InterviewReport struct {
	TechnicalKnowledge  int      `json:"technicalKnowledge"`
	CommunicationSkills int      `json:"communicationSkills"`
	Attitude            int      `json:"attitude"`
	OverallScore        int      `json:"overallScore"`
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	Recommendations     []string `json:"recommendations"`
	Role                string   `json:"role"`
	TextAnalysisScore   float64  `json:"textAnalysisScore"`
	SpeechAnalysisScore float64  `json:"speechAnalysisScore"`
}
