package types

import (
	"time"

	"github.com/prepwise/interview-engine/internal/analysis"
)

// QuestionAnswer is one answered interview question submitted for text
// analysis.
type QuestionAnswer struct {
	QuestionID int    `json:"questionId" validate:"required"`
	Question   string `json:"question" validate:"required"`
	Category   string `json:"category" validate:"required"`
	Response   string `json:"response" validate:"required"`
	WordCount  int    `json:"wordCount"`
}

// InterviewAnalysisRequest is the text-modality analysis payload.
type InterviewAnalysisRequest struct {
	InterviewID    string           `json:"interviewId" binding:"required"`
	SessionID      string           `json:"sessionId" binding:"required"`
	TotalQuestions int              `json:"totalQuestions" binding:"required"`
	Analysis       []QuestionAnswer `json:"analysis" binding:"required"`
}

// EnhancedAnswer is an answered question enriched with its corrected AI
// evaluation.
type EnhancedAnswer struct {
	QuestionAnswer
	AIAnalysis analysis.QuestionEvaluation `json:"aiAnalysis"`
}

// AnalysisMetadata summarizes one text-analysis run.
type AnalysisMetadata struct {
	AnalyzedAt     time.Time `json:"analyzedAt"`
	AverageScore   int       `json:"averageScore"`
	TotalAnalyzed  int       `json:"totalAnalyzed"`
	FailedAnalyses int       `json:"failedAnalyses"`
}

// InterviewAnalysisResponse is the text-modality analysis result.
type InterviewAnalysisResponse struct {
	InterviewID    string           `json:"interviewId"`
	SessionID      string           `json:"sessionId"`
	TotalQuestions int              `json:"totalQuestions"`
	Metadata       AnalysisMetadata `json:"analysisMetadata"`
	Analysis       []EnhancedAnswer `json:"analysis"`
}

// AudioAnalysisRequest asks for speech analysis of one already-uploaded
// answer recording.
type AudioAnalysisRequest struct {
	AudioURL   string `json:"audio_url" binding:"required,url"`
	QuestionID int    `json:"questionId"`
	Question   string `json:"question"`
}

// AudioBatchRequest asks for speech analysis of several recordings at once.
type AudioBatchRequest struct {
	Files []AudioAnalysisRequest `json:"files" binding:"required"`
}

// TranscriptionSummary is the transcript-level portion of an audio analysis.
type TranscriptionSummary struct {
	Text           string  `json:"text"`
	Duration       float64 `json:"duration"`
	WordCount      int     `json:"word_count"`
	WordsPerMinute int     `json:"words_per_minute"`
}

// AudioMetadata carries request identity through the audio analysis response.
type AudioMetadata struct {
	QuestionID        int       `json:"questionId,omitempty"`
	AnalysisTimestamp time.Time `json:"analysis_timestamp"`
	ServiceVersion    string    `json:"service_version"`
	Provider          string    `json:"provider"`
	Error             string    `json:"error,omitempty"`
}

// AudioAnalysisResponse is the speech-modality analysis result for one
// answer.
type AudioAnalysisResponse struct {
	Transcription         TranscriptionSummary           `json:"transcription"`
	CommunicationAnalysis analysis.CommunicationAnalysis `json:"communication_analysis"`
	Metadata              AudioMetadata                  `json:"metadata"`
}

// ReportRequest combines both modalities for aggregation into the final
// report. Either list may be empty.
type ReportRequest struct {
	Role           string                           `json:"role"`
	TextAnalysis   []analysis.ScoredQuestion        `json:"text_analysis"`
	SpeechAnalysis []analysis.CommunicationAnalysis `json:"speech_analysis"`
}

// GenerateQuestionsRequest asks the generative provider for an interview
// question set.
type GenerateQuestionsRequest struct {
	Role  string `json:"role" binding:"required"`
	Count int    `json:"count"`
}

// GeneratedQuestion is one generated interview question.
type GeneratedQuestion struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Category string `json:"category"`
}
