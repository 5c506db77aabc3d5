package interview

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepwise/interview-engine/internal/analysis"
	"github.com/prepwise/interview-engine/internal/monitoring"
	"github.com/prepwise/interview-engine/internal/providers"
	"github.com/prepwise/interview-engine/internal/types"
)

type fakeEvaluator struct {
	evaluation analysis.QuestionEvaluation
	questions  []types.GeneratedQuestion
	err        error
	failFor    map[int]bool
	calls      atomic.Int64
}

func (f *fakeEvaluator) EvaluateResponse(ctx context.Context, q types.QuestionAnswer) (analysis.QuestionEvaluation, error) {
	f.calls.Add(1)
	if f.err != nil {
		return analysis.QuestionEvaluation{}, f.err
	}
	if f.failFor[q.QuestionID] {
		return analysis.QuestionEvaluation{}, errors.New("provider rejected the request")
	}
	return f.evaluation, nil
}

func (f *fakeEvaluator) GenerateQuestions(ctx context.Context, role string, count int) ([]types.GeneratedQuestion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

func (f *fakeEvaluator) Close() error { return nil }

type fakeTranscriber struct {
	result analysis.TranscriptionResult
	err    error
	calls  atomic.Int64
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioURL string) (analysis.TranscriptionResult, error) {
	f.calls.Add(1)
	if f.err != nil {
		return analysis.TranscriptionResult{}, f.err
	}
	return f.result, nil
}

func newTestService(evaluator providers.Evaluator, transcriber providers.Transcriber) *Service {
	return NewService(evaluator, transcriber, monitoring.NewLogger(), monitoring.NewMetrics(), 2)
}

func detailedEvaluation() analysis.QuestionEvaluation {
	return analysis.QuestionEvaluation{
		Relevance:            analysis.CriterionScore{Score: 90, Comment: "On topic."},
		StructureAndClarity:  analysis.CriterionScore{Score: 85, Comment: "Clear."},
		Completeness:         analysis.CriterionScore{Score: 88, Comment: "Thorough."},
		TechnicalCorrectness: analysis.CriterionScore{Score: 92, Comment: "Correct."},
		OverallSummary:       "Strong answer.",
		OverallScore:         89,
	}
}

func interviewRequest(answers ...types.QuestionAnswer) types.InterviewAnalysisRequest {
	return types.InterviewAnalysisRequest{
		InterviewID:    "int-1",
		SessionID:      "sess-1",
		TotalQuestions: len(answers),
		Analysis:       answers,
	}
}

func TestAnalyzeInterview(t *testing.T) {
	answer := types.QuestionAnswer{
		QuestionID: 1,
		Question:   "Explain how you would design a rate limiter",
		Category:   "general",
		Response:   "good",
	}

	svc := newTestService(&fakeEvaluator{evaluation: detailedEvaluation()}, nil)

	resp, err := svc.AnalyzeInterview(context.Background(), interviewRequest(answer))

	require.NoError(t, err)
	require.Len(t, resp.Analysis, 1)

	// The raw 89 must come back corrected: a one-word answer caps at 3.
	assert.LessOrEqual(t, resp.Analysis[0].AIAnalysis.OverallScore, 3)
	assert.Equal(t, "int-1", resp.InterviewID)
	assert.Equal(t, 1, resp.Metadata.TotalAnalyzed)
	assert.Equal(t, 0, resp.Metadata.FailedAnalyses)
}

func TestAnalyzeInterviewContainsProviderFailures(t *testing.T) {
	answers := []types.QuestionAnswer{
		{QuestionID: 1, Question: "Q1", Category: "general", Response: "for example a long detailed answer about the topic with several points covered"},
		{QuestionID: 2, Question: "Q2", Category: "general", Response: "for example another long detailed answer about the topic with several points covered"},
	}

	evaluator := &fakeEvaluator{
		evaluation: detailedEvaluation(),
		failFor:    map[int]bool{2: true},
	}
	svc := newTestService(evaluator, nil)

	resp, err := svc.AnalyzeInterview(context.Background(), interviewRequest(answers...))

	require.NoError(t, err)
	require.Len(t, resp.Analysis, 2)

	assert.Equal(t, 1, resp.Metadata.TotalAnalyzed)
	assert.Equal(t, 1, resp.Metadata.FailedAnalyses)
	assert.Equal(t, int64(2), evaluator.calls.Load())

	// The failed question carries the fixed fallback scores, in order.
	assert.Equal(t, 2, resp.Analysis[1].QuestionID)
	assert.Equal(t, 5, resp.Analysis[1].AIAnalysis.OverallScore)
	assert.NotEmpty(t, resp.Analysis[1].AIAnalysis.Error)
	assert.Empty(t, resp.Analysis[0].AIAnalysis.Error)
}

func TestAnalyzeInterviewRejectsInvalidPayload(t *testing.T) {
	svc := newTestService(&fakeEvaluator{evaluation: detailedEvaluation()}, nil)

	_, err := svc.AnalyzeInterview(context.Background(), types.InterviewAnalysisRequest{})

	assert.Error(t, err)
}

func TestAnalyzeInterviewWithoutEvaluator(t *testing.T) {
	svc := NewService(nil, nil, monitoring.NewLogger(), monitoring.NewMetrics(), 2)

	answer := types.QuestionAnswer{QuestionID: 1, Question: "Q", Category: "general", Response: "some answer"}
	resp, err := svc.AnalyzeInterview(context.Background(), interviewRequest(answer))

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Metadata.FailedAnalyses)
	assert.Equal(t, 5, resp.Analysis[0].AIAnalysis.OverallScore)
}

func TestAnalyzeAudio(t *testing.T) {
	transcriber := &fakeTranscriber{
		result: analysis.TranscriptionResult{
			Text: "I definitely enjoy building backend services",
			Words: []analysis.Word{
				{Text: "I", Start: 0, End: 100, Confidence: 0.95},
				{Text: "definitely", Start: 350, End: 450, Confidence: 0.95},
				{Text: "enjoy", Start: 700, End: 800, Confidence: 0.95},
				{Text: "building", Start: 1050, End: 1150, Confidence: 0.95},
			},
			AudioDuration: 2.0,
			Sentiments:    []analysis.Sentiment{{Sentiment: "POSITIVE"}},
		},
	}
	svc := newTestService(nil, transcriber)

	resp, err := svc.AnalyzeAudio(context.Background(), types.AudioAnalysisRequest{
		AudioURL:   "https://cdn.example.com/answer1.wav",
		QuestionID: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.Transcription.WordCount)
	assert.Equal(t, 120, resp.Transcription.WordsPerMinute)
	assert.Empty(t, resp.Metadata.Error)
	assert.Equal(t, 3, resp.Metadata.QuestionID)
	assert.Empty(t, resp.CommunicationAnalysis.Error)
	assert.GreaterOrEqual(t, resp.CommunicationAnalysis.OverallScore, 0)
}

func TestAnalyzeAudioTranscriptionFailure(t *testing.T) {
	svc := newTestService(nil, &fakeTranscriber{err: errors.New("audio unreachable")})

	resp, err := svc.AnalyzeAudio(context.Background(), types.AudioAnalysisRequest{
		AudioURL: "https://cdn.example.com/broken.wav",
	})

	// Provider failure degrades to the fixed fallback, not an error.
	require.NoError(t, err)
	assert.Equal(t, 12, resp.CommunicationAnalysis.OverallScore)
	assert.Equal(t, "audio unreachable", resp.Metadata.Error)
}

func TestAnalyzeAudioWithoutTranscriber(t *testing.T) {
	svc := newTestService(nil, nil)

	resp, err := svc.AnalyzeAudio(context.Background(), types.AudioAnalysisRequest{
		AudioURL: "https://cdn.example.com/answer.wav",
	})

	require.NoError(t, err)
	assert.Equal(t, 12, resp.CommunicationAnalysis.OverallScore)
	assert.NotEmpty(t, resp.Metadata.Error)
}

func TestAnalyzeAudioBatch(t *testing.T) {
	transcriber := &fakeTranscriber{
		result: analysis.TranscriptionResult{Text: "short answer", AudioDuration: 1.0},
	}
	svc := newTestService(nil, transcriber)

	results, err := svc.AnalyzeAudioBatch(context.Background(), types.AudioBatchRequest{
		Files: []types.AudioAnalysisRequest{
			{AudioURL: "https://cdn.example.com/a.wav", QuestionID: 1},
			{AudioURL: "https://cdn.example.com/b.wav", QuestionID: 2},
		},
	})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Metadata.QuestionID)
	assert.Equal(t, 2, results[1].Metadata.QuestionID)
}

func TestAnalyzeAudioBatchRejectsEmpty(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.AnalyzeAudioBatch(context.Background(), types.AudioBatchRequest{})

	assert.Error(t, err)
}

func TestAnalyzeAudioBatchRejectsOversized(t *testing.T) {
	transcriber := &fakeTranscriber{
		result: analysis.TranscriptionResult{Text: "short answer", AudioDuration: 1.0},
	}
	svc := newTestService(nil, transcriber)

	files := make([]types.AudioAnalysisRequest, 11)
	for i := range files {
		files[i] = types.AudioAnalysisRequest{AudioURL: "https://cdn.example.com/q.wav", QuestionID: i + 1}
	}

	_, err := svc.AnalyzeAudioBatch(context.Background(), types.AudioBatchRequest{Files: files})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum 10 files")
	assert.Equal(t, int64(0), transcriber.calls.Load())
}

func TestGenerateQuestions(t *testing.T) {
	evaluator := &fakeEvaluator{
		questions: []types.GeneratedQuestion{
			{Question: "What is a mutex?", Category: "technical"},
			{Question: "Describe a conflict you resolved", Category: "behavioral"},
		},
	}
	svc := newTestService(evaluator, nil)

	questions, err := svc.GenerateQuestions(context.Background(), types.GenerateQuestionsRequest{Role: "Backend Engineer", Count: 2})

	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].ID)
	assert.Equal(t, 2, questions[1].ID)
}

func TestGenerateQuestionsWithoutEvaluator(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.GenerateQuestions(context.Background(), types.GenerateQuestionsRequest{Role: "Developer"})

	assert.Error(t, err)
}

func TestBuildReportPassesThroughModalities(t *testing.T) {
	svc := newTestService(nil, nil)

	report := svc.BuildReport(types.ReportRequest{
		Role: "Backend Engineer",
		TextAnalysis: []analysis.ScoredQuestion{
			{QuestionID: 1, Question: "Q", Category: "technical", Evaluation: analysis.QuestionEvaluation{OverallScore: 80}},
		},
		SpeechAnalysis: []analysis.CommunicationAnalysis{
			{OverallScore: 80, Confidence: analysis.ConfidenceResult{Score: 90}},
		},
	})

	assert.Equal(t, 68, report.OverallScore)
	assert.Equal(t, "Backend Engineer", report.Role)
}
