package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// evenlySpacedWords builds words with a constant inter-word gap in
// milliseconds, each word lasting 100ms.
func evenlySpacedWords(texts []string, gap int, confidence float64) []Word {
	words := make([]Word, len(texts))
	pos := 0
	for i, text := range texts {
		words[i] = Word{Text: text, Start: pos, End: pos + 100, Confidence: confidence}
		pos += 100 + gap
	}
	return words
}

func TestAnalyzeSpeechEmptyTranscription(t *testing.T) {
	m := AnalyzeSpeech(TranscriptionResult{})

	assert.Equal(t, 0.0, m.HesitationRate)
	assert.Equal(t, 0, m.HesitationCount)
	assert.Equal(t, 30.0, m.AverageConfidence)
	assert.Equal(t, 30.0, m.PauseQuality)
	assert.Equal(t, "Insufficient data for pause analysis", m.PauseDetails)
	assert.Equal(t, 30.0, m.ToneScore)
}

func TestDetectHesitations(t *testing.T) {
	tests := []struct {
		name          string
		words         []string
		expectedCount int
		expectedRate  float64
	}{
		{
			name:          "clean speech",
			words:         []string{"my", "favorite", "topic", "is", "databases"},
			expectedCount: 0,
			expectedRate:  0,
		},
		{
			name:          "one filler in three words",
			words:         []string{"Um,", "good", "morning"},
			expectedCount: 1,
			expectedRate:  33.33,
		},
		{
			name:          "punctuation does not hide markers",
			words:         []string{"Uh...", "so", "basically,", "yes"},
			expectedCount: 2,
			expectedRate:  50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := evenlySpacedWords(tt.words, 250, 0.95)
			m := AnalyzeSpeech(TranscriptionResult{Text: strings.Join(tt.words, " "), Words: words})

			assert.Equal(t, tt.expectedCount, m.HesitationCount)
			assert.Equal(t, tt.expectedRate, m.HesitationRate)
			assert.Len(t, m.Hesitations, tt.expectedCount)
		})
	}
}

func TestAnalyzePauses(t *testing.T) {
	tests := []struct {
		name     string
		gap      int
		expected float64
	}{
		{name: "natural pacing", gap: 250, expected: 85},
		{name: "acceptable pacing", gap: 170, expected: 70},
		{name: "rushed delivery", gap: 60, expected: 30},
		{name: "long hesitant gaps", gap: 700, expected: 25},
	}

	texts := []string{"one", "two", "three", "four", "five"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := evenlySpacedWords(texts, tt.gap, 0.95)
			m := AnalyzeSpeech(TranscriptionResult{Words: words})

			assert.Equal(t, tt.expected, m.PauseQuality)
		})
	}
}

func TestAnalyzePausesNoMeasurableGaps(t *testing.T) {
	// All gaps at or below the 50ms noise floor. The default average
	// lands in the natural band but the no-gaps override and the low
	// pause count reduction still apply.
	words := evenlySpacedWords([]string{"one", "two", "three", "four"}, 40, 0.95)
	m := AnalyzeSpeech(TranscriptionResult{Words: words})

	assert.Equal(t, 16.0, m.PauseQuality)
}

func TestAnalyzeConfidence(t *testing.T) {
	tests := []struct {
		name        string
		confidences []float64
		expected    float64
	}{
		{
			name:        "uniformly high",
			confidences: []float64{0.95, 0.95, 0.95, 0.95, 0.95},
			expected:    95,
		},
		{
			name:        "heavy low-confidence discount",
			confidences: []float64{0.5, 0.5, 0.9, 0.9, 0.9},
			expected:    52, // avg 0.74, low ratio 0.4 applies the 0.7 factor
		},
		{
			name:        "moderate low-confidence discount",
			confidences: []float64{0.7, 0.9, 0.9, 0.9},
			expected:    72, // avg 0.85, low ratio 0.25 applies the 0.85 factor
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := make([]Word, len(tt.confidences))
			pos := 0
			for i, c := range tt.confidences {
				words[i] = Word{Text: "word", Start: pos, End: pos + 100, Confidence: c}
				pos += 350
			}

			m := AnalyzeSpeech(TranscriptionResult{Words: words})
			assert.Equal(t, tt.expected, m.AverageConfidence)
		})
	}
}

func TestAnalyzeToneFromSentiments(t *testing.T) {
	tests := []struct {
		name       string
		sentiments []Sentiment
		expected   float64
	}{
		{
			name: "all positive",
			sentiments: []Sentiment{
				{Sentiment: "POSITIVE"}, {Sentiment: "POSITIVE"},
				{Sentiment: "POSITIVE"}, {Sentiment: "POSITIVE"},
			},
			expected: 65,
		},
		{
			name: "negative spans trigger the penalty",
			sentiments: []Sentiment{
				{Sentiment: "POSITIVE"}, {Sentiment: "POSITIVE"},
				{Sentiment: "NEUTRAL"}, {Sentiment: "NEGATIVE"},
			},
			expected: 18,
		},
		{
			name: "mostly neutral",
			sentiments: []Sentiment{
				{Sentiment: "NEUTRAL"}, {Sentiment: "NEUTRAL"},
				{Sentiment: "NEUTRAL"}, {Sentiment: "POSITIVE"},
			},
			// 30 + 8.75 - 7.5, then -15 for neutral ratio and -10 for
			// low positive ratio
			expected: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := AnalyzeSpeech(TranscriptionResult{Sentiments: tt.sentiments})
			assert.Equal(t, tt.expected, m.ToneScore)
		})
	}
}

func TestLexicalToneFallback(t *testing.T) {
	t.Run("confident long answer", func(t *testing.T) {
		// No sentiment data, one confident keyword, over 100
		// characters: 50 + 20 with no penalties.
		text := strings.TrimSpace(strings.Repeat("definitely ", 100))
		m := AnalyzeSpeech(TranscriptionResult{Text: text})

		assert.Equal(t, 70.0, m.ToneScore)
		assert.Equal(t, "Analyzed based on word choice patterns - stricter evaluation", m.SentimentDetails)
	})

	t.Run("uncertain short answer", func(t *testing.T) {
		// 50 - 25 (uncertain) - 20 (short) = 5, clamped to 10.
		m := AnalyzeSpeech(TranscriptionResult{Text: "maybe that works"})

		assert.Equal(t, 10.0, m.ToneScore)
	})
}

func TestAnalyzeSpeechDeterministic(t *testing.T) {
	tr := TranscriptionResult{
		Text:  "Um, I definitely enjoy distributed systems work",
		Words: evenlySpacedWords([]string{"Um,", "I", "definitely", "enjoy", "distributed", "systems", "work"}, 250, 0.92),
		Sentiments: []Sentiment{
			{Sentiment: "POSITIVE"}, {Sentiment: "NEUTRAL"},
		},
		AudioDuration: 4.2,
	}

	first := AnalyzeSpeech(tr)
	second := AnalyzeSpeech(tr)

	assert.Equal(t, first, second)
}
