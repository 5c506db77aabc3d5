package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prepwise/interview-engine/internal/analysis"
	"github.com/prepwise/interview-engine/internal/errors"
	"github.com/prepwise/interview-engine/internal/resilience"
)

const assemblyAIBaseURL = "https://api.assemblyai.com"

// Transcriber submits an audio URL for transcription and returns the raw
// provider result. Implementations block until the transcription job settles.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (analysis.TranscriptionResult, error)
}

// AssemblyAIClient drives the AssemblyAI transcript lifecycle: submit, then
// poll at a fixed interval with a bounded attempt count.
type AssemblyAIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	poll       resilience.PollConfig
}

// NewAssemblyAIClient creates a transcription client. An empty apiKey is a
// configuration error surfaced on first use, not at construction.
func NewAssemblyAIClient(apiKey string) *AssemblyAIClient {
	return &AssemblyAIClient{
		apiKey:  apiKey,
		baseURL: assemblyAIBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		poll: resilience.DefaultPollConfig(),
	}
}

// WithBaseURL overrides the API endpoint, for tests.
func (c *AssemblyAIClient) WithBaseURL(baseURL string) *AssemblyAIClient {
	c.baseURL = baseURL
	return c
}

// WithPollConfig overrides the polling cadence.
func (c *AssemblyAIClient) WithPollConfig(poll resilience.PollConfig) *AssemblyAIClient {
	c.poll = poll
	return c
}

// IsConfigured reports whether an API key is present.
func (c *AssemblyAIClient) IsConfigured() bool {
	return c.apiKey != ""
}

type transcriptRequest struct {
	AudioURL          string `json:"audio_url"`
	SpeechModel       string `json:"speech_model"`
	SentimentAnalysis bool   `json:"sentiment_analysis"`
	Punctuate         bool   `json:"punctuate"`
	FormatText        bool   `json:"format_text"`
	SpeakerLabels     bool   `json:"speaker_labels"`
	Disfluencies      bool   `json:"disfluencies"`
}

type transcriptResponse struct {
	ID            string               `json:"id"`
	Status        string               `json:"status"`
	Error         string               `json:"error,omitempty"`
	Text          string               `json:"text"`
	Words         []analysis.Word      `json:"words"`
	AudioDuration float64              `json:"audio_duration"`
	Sentiments    []analysis.Sentiment `json:"sentiment_analysis_results"`
}

// Transcribe submits the audio URL and polls until the job completes. The
// request enables sentiment analysis and disfluencies so the scoring core
// receives hesitation markers and sentiment spans.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audioURL string) (analysis.TranscriptionResult, error) {
	if !c.IsConfigured() {
		return analysis.TranscriptionResult{}, errors.NewConfigurationError("AssemblyAI API key is not configured", nil)
	}

	var transcriptID string
	err := resilience.Retry(ctx, func() error {
		id, err := c.submit(ctx, audioURL)
		if err != nil {
			return err
		}
		transcriptID = id
		return nil
	})
	if err != nil {
		return analysis.TranscriptionResult{}, err
	}

	var final transcriptResponse
	err = resilience.Poll(ctx, c.poll, func() (bool, error) {
		resp, err := c.fetch(ctx, transcriptID)
		if err != nil {
			return false, err
		}
		switch resp.Status {
		case "completed":
			final = resp
			return true, nil
		case "error":
			return false, errors.NewProviderError("AssemblyAI", fmt.Errorf("transcription failed: %s", resp.Error))
		default:
			return false, nil
		}
	})
	if err != nil {
		return analysis.TranscriptionResult{}, err
	}

	return analysis.TranscriptionResult{
		Text:          final.Text,
		Words:         final.Words,
		AudioDuration: final.AudioDuration,
		Sentiments:    final.Sentiments,
	}, nil
}

func (c *AssemblyAIClient) submit(ctx context.Context, audioURL string) (string, error) {
	body, err := json.Marshal(transcriptRequest{
		AudioURL:          audioURL,
		SpeechModel:       "universal",
		SentimentAnalysis: true,
		Punctuate:         true,
		FormatText:        true,
		SpeakerLabels:     false,
		Disfluencies:      true,
	})
	if err != nil {
		return "", errors.NewInternalError("failed to encode transcript request", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/v2/transcript", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var parsed transcriptResponse
	if err := json.Unmarshal(resp, &parsed); err != nil {
		return "", errors.NewProviderError("AssemblyAI", fmt.Errorf("failed to decode transcript response: %w", err))
	}
	if parsed.ID == "" {
		return "", errors.NewProviderError("AssemblyAI", fmt.Errorf("transcript response missing id"))
	}

	return parsed.ID, nil
}

func (c *AssemblyAIClient) fetch(ctx context.Context, transcriptID string) (transcriptResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/v2/transcript/"+transcriptID, nil)
	if err != nil {
		return transcriptResponse{}, err
	}

	var parsed transcriptResponse
	if err := json.Unmarshal(resp, &parsed); err != nil {
		return transcriptResponse{}, errors.NewProviderError("AssemblyAI", fmt.Errorf("failed to decode transcript status: %w", err))
	}

	return parsed, nil
}

func (c *AssemblyAIClient) doRequest(ctx context.Context, method, url string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.NewInternalError("failed to build provider request", err)
	}

	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewProviderError("AssemblyAI", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewProviderError("AssemblyAI", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewProviderError("AssemblyAI",
			fmt.Errorf("status %d, body: %s", resp.StatusCode, string(data)))
	}

	return data, nil
}
