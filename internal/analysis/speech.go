package analysis

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

// hesitationMarkers are the filler words and phrases whose presence drives the
// hesitation rate. Matching is substring-based over the cleaned lowercase
// token, so multi-word markers only fire when the provider emits them as one
// token.
var hesitationMarkers = []string{
	"um", "uh", "er", "ah", "like", "you know", "basically",
	"actually", "sort of", "kind of", "i mean", "well",
}

var (
	confidenceKeywords = []string{"definitely", "certainly", "absolutely", "clearly", "confident", "sure", "exactly"}
	uncertainKeywords  = []string{"maybe", "perhaps", "i think", "probably", "possibly", "not sure", "i guess", "kind of", "sort of"}
	weakKeywords       = []string{"just", "only", "a little", "somewhat", "rather", "quite"}
)

// AnalyzeSpeech derives SpeechMetrics from a transcription result. The input
// is never mutated; every call over identical input yields identical output.
func AnalyzeSpeech(tr TranscriptionResult) SpeechMetrics {
	hesitations := detectHesitations(tr.Words)

	rate := 0.0
	if len(tr.Words) > 0 {
		rate = float64(len(hesitations)) / float64(len(tr.Words)) * 100
	}

	pauseQuality, pauseDetails := analyzePauses(tr.Words)
	confidence := analyzeConfidence(tr.Words)
	toneScore, toneDetails := analyzeTone(tr.Sentiments, tr.Text)

	return SpeechMetrics{
		HesitationRate:    math.Round(rate*100) / 100,
		HesitationCount:   len(hesitations),
		AverageConfidence: confidence,
		PauseQuality:      pauseQuality,
		ToneScore:         toneScore,
		Hesitations:       hesitations,
		PauseDetails:      pauseDetails,
		SentimentDetails:  toneDetails,
	}
}

func detectHesitations(words []Word) []string {
	var found []string
	for _, w := range words {
		clean := cleanToken(w.Text)
		for _, marker := range hesitationMarkers {
			if strings.Contains(clean, marker) {
				found = append(found, w.Text)
				break
			}
		}
	}
	return found
}

// cleanToken lowercases and strips punctuation, keeping letters, digits,
// underscores and spaces.
func cleanToken(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			return unicode.ToLower(r)
		case r == '_' || unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, s)
}

// analyzePauses scores inter-word gap timing. Gaps of 50ms or less are
// ignored; the natural range is 200-400ms.
func analyzePauses(words []Word) (float64, string) {
	if len(words) < 2 {
		return 30, "Insufficient data for pause analysis"
	}

	var gaps []float64
	for i := 1; i < len(words); i++ {
		gap := float64(words[i].Start - words[i-1].End)
		if gap > 50 {
			gaps = append(gaps, gap)
		}
	}

	averageGap := 200.0
	if len(gaps) > 0 {
		sum := 0.0
		for _, g := range gaps {
			sum += g
		}
		averageGap = sum / float64(len(gaps))
	}

	var score float64
	switch {
	case averageGap >= 200 && averageGap <= 400:
		score = 85
	case averageGap >= 150 && averageGap <= 500:
		score = 70
	case averageGap < 100:
		score = 30 // rushed
	case averageGap > 600:
		score = 25 // hesitant
	default:
		score = 45
	}

	if len(gaps) == 0 {
		score = 20
	}
	if float64(len(gaps)) < float64(len(words))*0.1 {
		score *= 0.8
	}

	variance := 0.0
	if len(gaps) > 0 {
		for _, g := range gaps {
			variance += (g - averageGap) * (g - averageGap)
		}
		variance /= float64(len(gaps))
		if variance > 10000 {
			score *= 0.9
		}
	}

	details := fmt.Sprintf("Average pause: %dms, Total pauses: %d, Variance: %dms",
		int(math.Round(averageGap)), len(gaps), int(math.Round(math.Sqrt(variance))))

	return clampFloat(score, 10, 100), details
}

// analyzeConfidence averages per-word recognition confidence and scales it to
// 0-100. With no words it falls back to 30. Answers dominated by
// low-confidence words are discounted.
func analyzeConfidence(words []Word) float64 {
	if len(words) == 0 {
		return 30
	}

	sum := 0.0
	lowCount := 0
	for _, w := range words {
		sum += w.Confidence
		if w.Confidence < 0.8 {
			lowCount++
		}
	}
	avg := sum / float64(len(words))

	lowRatio := float64(lowCount) / float64(len(words))
	if lowRatio > 0.3 {
		avg *= 0.7
	} else if lowRatio > 0.2 {
		avg *= 0.85
	}

	return math.Round(avg * 100)
}

// analyzeTone scores delivery tone from provider sentiment spans. Without
// sentiment data it falls back to lexical heuristics over the transcript.
func analyzeTone(sentiments []Sentiment, text string) (float64, string) {
	if len(sentiments) == 0 {
		return lexicalTone(text)
	}

	var positive, neutral, negative int
	for _, s := range sentiments {
		switch s.Sentiment {
		case "POSITIVE":
			positive++
		case "NEGATIVE":
			negative++
		default:
			neutral++
		}
	}

	total := float64(len(sentiments))
	posRatio := float64(positive) / total
	negRatio := float64(negative) / total
	neutralRatio := float64(neutral) / total

	score := 30 + posRatio*35 - negRatio*30 - neutralRatio*10
	if negRatio > 0.2 {
		score -= 20
	}
	if neutralRatio > 0.6 {
		score -= 15
	}
	if posRatio < 0.3 {
		score -= 10
	}

	score = clampFloat(math.Round(score), 10, 100)
	details := fmt.Sprintf("Positive: %d (%d%%), Neutral: %d (%d%%), Negative: %d (%d%%)",
		positive, int(math.Round(posRatio*100)),
		neutral, int(math.Round(neutralRatio*100)),
		negative, int(math.Round(negRatio*100)))

	return score, details
}

func lexicalTone(text string) (float64, string) {
	lower := strings.ToLower(text)

	score := 50.0
	if containsAny(lower, confidenceKeywords) {
		score += 20
	}
	if containsAny(lower, uncertainKeywords) {
		score -= 25
	}
	if containsAny(lower, weakKeywords) {
		score -= 15
	}
	if len(text) < 100 {
		score -= 20
	}

	return clampFloat(score, 10, 100), "Analyzed based on word choice patterns - stricter evaluation"
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
