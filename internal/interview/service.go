package interview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/prepwise/interview-engine/internal/analysis"
	apperrors "github.com/prepwise/interview-engine/internal/errors"
	"github.com/prepwise/interview-engine/internal/monitoring"
	"github.com/prepwise/interview-engine/internal/providers"
	"github.com/prepwise/interview-engine/internal/types"
	"github.com/prepwise/interview-engine/internal/validation"
)

const serviceVersion = "1.0.0"

// maxBatchFiles caps a single batch request.
const maxBatchFiles = 10

// Service orchestrates provider calls and deterministic scoring for all
// analysis operations. Provider failures never fail a whole interview;
// the failed entry is replaced with fixed low-score fallback values and
// the rest proceed.
type Service struct {
	evaluator     providers.Evaluator
	transcriber   providers.Transcriber
	validator     *validation.Validator
	logger        *monitoring.Logger
	metrics       *monitoring.Metrics
	maxConcurrent int
}

// NewService creates an interview analysis service. Either provider may
// be nil when unconfigured; affected entries then carry fallback scores.
func NewService(evaluator providers.Evaluator, transcriber providers.Transcriber, logger *monitoring.Logger, metrics *monitoring.Metrics, maxConcurrent int) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Service{
		evaluator:     evaluator,
		transcriber:   transcriber,
		validator:     validation.New(),
		logger:        logger,
		metrics:       metrics,
		maxConcurrent: maxConcurrent,
	}
}

// AnalyzeInterview grades every answered question in the payload and
// returns the corrected evaluations in the original question order.
func (s *Service) AnalyzeInterview(ctx context.Context, req types.InterviewAnalysisRequest) (*types.InterviewAnalysisResponse, error) {
	if err := validation.RequireValid(s.validator.ValidateInterviewPayload(req), "interview payload"); err != nil {
		return nil, err
	}

	start := time.Now()
	runID := uuid.NewString()

	enhanced := make([]types.EnhancedAnswer, len(req.Analysis))
	var failed int64
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, qa := range req.Analysis {
		g.Go(func() error {
			eval, err := s.evaluateQuestion(gctx, qa)
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				s.metrics.IncrementFallback()
				eval = analysis.FallbackEvaluation(err.Error())
			}
			enhanced[i] = types.EnhancedAnswer{
				QuestionAnswer: qa,
				AIAnalysis:     eval,
			}
			return nil
		})
	}

	// Goroutines above report failure through fallback entries, never
	// through the group error
	_ = g.Wait()

	total := 0
	for _, e := range enhanced {
		total += e.AIAnalysis.OverallScore
	}
	averageScore := 0
	if len(enhanced) > 0 {
		averageScore = total / len(enhanced)
	}

	duration := time.Since(start)
	s.logger.TextAnalysisLogger(req.InterviewID, len(req.Analysis), len(enhanced)-int(failed), int(failed), averageScore, duration)
	s.logger.Info("Interview analysis complete",
		"run_id", runID,
		"interview_id", req.InterviewID,
		"session_id", req.SessionID,
		"duration_ms", duration.Milliseconds(),
	)

	return &types.InterviewAnalysisResponse{
		InterviewID:    req.InterviewID,
		SessionID:      req.SessionID,
		TotalQuestions: req.TotalQuestions,
		Metadata: types.AnalysisMetadata{
			AnalyzedAt:     time.Now().UTC(),
			AverageScore:   averageScore,
			TotalAnalyzed:  len(enhanced) - int(failed),
			FailedAnalyses: int(failed),
		},
		Analysis: enhanced,
	}, nil
}

// evaluateQuestion runs one answer through the grader and applies the
// deterministic corrections
func (s *Service) evaluateQuestion(ctx context.Context, qa types.QuestionAnswer) (analysis.QuestionEvaluation, error) {
	if s.evaluator == nil {
		return analysis.QuestionEvaluation{}, apperrors.NewConfigurationError("text evaluation provider is not configured", nil)
	}

	s.metrics.IncrementGeminiCalls()
	start := time.Now()
	eval, err := s.evaluator.EvaluateResponse(ctx, qa)
	s.metrics.RecordExternalAPIRequest("gemini", err == nil)
	s.logger.ExternalAPILogger("gemini", "POST", "generateContent", 0, time.Since(start), err == nil)
	if err != nil {
		return analysis.QuestionEvaluation{}, err
	}

	if result := s.validator.ValidateEvaluation(eval); !result.Valid {
		return analysis.QuestionEvaluation{}, apperrors.NewProviderError("gemini", fmt.Errorf("malformed evaluation: %v", result.Errors))
	}

	return analysis.PostProcessEvaluation(eval, qa.Response, qa.Category), nil
}

// AnalyzeAudio transcribes one recording and scores its delivery.
func (s *Service) AnalyzeAudio(ctx context.Context, req types.AudioAnalysisRequest) (*types.AudioAnalysisResponse, error) {
	start := time.Now()

	tr, err := s.transcribe(ctx, req.AudioURL)
	if err != nil {
		s.metrics.IncrementFallback()
		s.logger.AudioAnalysisLogger(req.QuestionID, 0, 12, true, time.Since(start))
		return s.fallbackAudioResponse(req, err), nil
	}

	if result := s.validator.ValidateTranscription(tr); !result.Valid {
		s.metrics.IncrementFallback()
		err := apperrors.NewProviderError("assemblyai", fmt.Errorf("malformed transcription: %v", result.Errors))
		s.logger.AudioAnalysisLogger(req.QuestionID, 0, 12, true, time.Since(start))
		return s.fallbackAudioResponse(req, err), nil
	}

	metrics := analysis.AnalyzeSpeech(tr)
	comm := analysis.ComposeCommunication(metrics)

	wordCount := len(tr.Words)
	wordsPerMinute := 0
	if tr.AudioDuration > 0 {
		wordsPerMinute = int(float64(wordCount)/tr.AudioDuration*60 + 0.5)
	}

	s.logger.AudioAnalysisLogger(req.QuestionID, wordCount, comm.OverallScore, false, time.Since(start))

	return &types.AudioAnalysisResponse{
		Transcription: types.TranscriptionSummary{
			Text:           tr.Text,
			Duration:       tr.AudioDuration,
			WordCount:      wordCount,
			WordsPerMinute: wordsPerMinute,
		},
		CommunicationAnalysis: comm,
		Metadata: types.AudioMetadata{
			QuestionID:        req.QuestionID,
			AnalysisTimestamp: time.Now().UTC(),
			ServiceVersion:    serviceVersion,
			Provider:          "assemblyai",
		},
	}, nil
}

// AnalyzeAudioBatch scores several recordings concurrently, preserving
// request order in the results.
func (s *Service) AnalyzeAudioBatch(ctx context.Context, req types.AudioBatchRequest) ([]types.AudioAnalysisResponse, error) {
	if len(req.Files) == 0 {
		return nil, apperrors.NewValidationError("files must not be empty")
	}
	if len(req.Files) > maxBatchFiles {
		return nil, apperrors.NewValidationError(fmt.Sprintf("maximum %d files allowed per batch", maxBatchFiles))
	}

	results := make([]types.AudioAnalysisResponse, len(req.Files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, file := range req.Files {
		g.Go(func() error {
			resp, err := s.AnalyzeAudio(gctx, file)
			if err != nil {
				resp = s.fallbackAudioResponse(file, err)
			}
			results[i] = *resp
			return nil
		})
	}

	_ = g.Wait()

	return results, nil
}

func (s *Service) transcribe(ctx context.Context, audioURL string) (analysis.TranscriptionResult, error) {
	if s.transcriber == nil {
		return analysis.TranscriptionResult{}, apperrors.NewConfigurationError("transcription provider is not configured", nil)
	}

	s.metrics.IncrementTranscriptionCalls()
	start := time.Now()
	tr, err := s.transcriber.Transcribe(ctx, audioURL)
	s.metrics.RecordExternalAPIRequest("assemblyai", err == nil)
	s.logger.ExternalAPILogger("assemblyai", "POST", "/transcript", 0, time.Since(start), err == nil)
	return tr, err
}

// fallbackAudioResponse builds the fixed low-score response used when
// transcription or its validation fails
func (s *Service) fallbackAudioResponse(req types.AudioAnalysisRequest, cause error) *types.AudioAnalysisResponse {
	return &types.AudioAnalysisResponse{
		Transcription:         types.TranscriptionSummary{},
		CommunicationAnalysis: analysis.FallbackCommunicationAnalysis(cause.Error()),
		Metadata: types.AudioMetadata{
			QuestionID:        req.QuestionID,
			AnalysisTimestamp: time.Now().UTC(),
			ServiceVersion:    serviceVersion,
			Provider:          "assemblyai",
			Error:             cause.Error(),
		},
	}
}

// BuildReport aggregates both modalities into the final interview report.
func (s *Service) BuildReport(req types.ReportRequest) analysis.InterviewReport {
	return analysis.BuildReport(req.TextAnalysis, req.SpeechAnalysis, req.Role)
}

// GenerateQuestions asks the generative provider for a question set.
func (s *Service) GenerateQuestions(ctx context.Context, req types.GenerateQuestionsRequest) ([]types.GeneratedQuestion, error) {
	if s.evaluator == nil {
		return nil, apperrors.NewConfigurationError("text evaluation provider is not configured", nil)
	}

	count := req.Count
	if count <= 0 {
		count = 5
	}
	if count > 20 {
		count = 20
	}

	s.metrics.IncrementGeminiCalls()
	start := time.Now()
	questions, err := s.evaluator.GenerateQuestions(ctx, req.Role, count)
	s.metrics.RecordExternalAPIRequest("gemini", err == nil)
	s.logger.ExternalAPILogger("gemini", "POST", "generateContent", 0, time.Since(start), err == nil)
	if err != nil {
		return nil, apperrors.NewProviderError("gemini", err)
	}

	for i := range questions {
		if questions[i].ID == 0 {
			questions[i].ID = i + 1
		}
	}

	return questions, nil
}
