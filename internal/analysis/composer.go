package analysis

import (
	"fmt"
	"math"
)

// Composition weights for the overall communication score. Pauses are
// reported but carry no weight.
const (
	confidenceWeight = 0.40
	toneWeight       = 0.25
	hesitationWeight = 0.35
	pauseWeight      = 0.0

	// Flat reduction applied after the quality penalty.
	strictnessFactor = 0.75
)

// ComposeCommunication combines SpeechMetrics into the per-question
// CommunicationAnalysis. Pure function: identical input yields identical
// output.
func ComposeCommunication(m SpeechMetrics) CommunicationAnalysis {
	return CommunicationAnalysis{
		Tone: ToneResult{
			Score:      m.ToneScore,
			Assessment: assessTone(m.ToneScore),
			Details:    m.SentimentDetails,
		},
		Confidence: ConfidenceResult{
			Score:      m.AverageConfidence,
			Assessment: assessConfidence(m.AverageConfidence),
		},
		Hesitation: HesitationResult{
			Level:   assessHesitation(m.HesitationRate),
			Count:   m.HesitationCount,
			Rate:    m.HesitationRate,
			Details: m.Hesitations,
		},
		Pauses: PauseResult{
			Quality:    m.PauseQuality,
			Assessment: assessPauses(m.PauseQuality),
			Details:    m.PauseDetails,
		},
		OverallScore: overallCommunicationScore(m),
		Summary:      communicationSummary(m),
	}
}

// overallCommunicationScore applies the weighted base score, the cumulative
// quality penalty and the flat strictness reduction. The penalty factors are
// applied in a fixed order; rounding happens once at the end.
func overallCommunicationScore(m SpeechMetrics) int {
	hesitationScore := math.Max(0, 100-m.HesitationRate*12)

	qualityPenalty := 1.0

	if m.AverageConfidence < 60 {
		qualityPenalty *= 0.5
	} else if m.AverageConfidence < 75 {
		qualityPenalty *= 0.7
	} else if m.AverageConfidence < 85 {
		qualityPenalty *= 0.85
	}

	if m.HesitationRate > 6 {
		qualityPenalty *= 0.4
	} else if m.HesitationRate > 3 {
		qualityPenalty *= 0.6
	} else if m.HesitationRate > 1.5 {
		qualityPenalty *= 0.8
	}

	if m.ToneScore < 50 {
		qualityPenalty *= 0.6
	} else if m.ToneScore < 70 {
		qualityPenalty *= 0.8
	}

	if m.PauseQuality < 60 {
		qualityPenalty *= 0.8
	} else if m.PauseQuality < 80 {
		qualityPenalty *= 0.9
	}

	baseScore := m.AverageConfidence*confidenceWeight +
		m.ToneScore*toneWeight +
		hesitationScore*hesitationWeight +
		m.PauseQuality*pauseWeight

	finalScore := baseScore * qualityPenalty * strictnessFactor

	return int(math.Round(clampFloat(finalScore, 0, 100)))
}

func assessTone(score float64) string {
	switch {
	case score >= 95:
		return "confident and positive"
	case score >= 88:
		return "generally positive"
	case score >= 78:
		return "neutral to slightly positive"
	case score >= 60:
		return "lacks confidence and enthusiasm"
	case score >= 40:
		return "poor tone and low confidence"
	default:
		return "unacceptable tone and delivery"
	}
}

func assessConfidence(score float64) string {
	switch {
	case score >= 98:
		return "exceptional confidence and clarity"
	case score >= 92:
		return "very confident delivery"
	case score >= 85:
		return "confident delivery"
	case score >= 75:
		return "moderate confidence with some clarity issues"
	case score >= 60:
		return "low confidence with noticeable hesitation"
	case score >= 40:
		return "poor confidence and unclear delivery"
	default:
		return "unacceptable confidence and major clarity issues"
	}
}

func assessHesitation(rate float64) string {
	switch {
	case rate <= 0.5:
		return "minimal"
	case rate <= 1.5:
		return "low"
	case rate <= 3:
		return "moderate - noticeable"
	case rate <= 6:
		return "high - concerning"
	case rate <= 10:
		return "excessive - major issue"
	default:
		return "unacceptable - severe communication problem"
	}
}

func assessPauses(quality float64) string {
	switch {
	case quality >= 98:
		return "excellent - natural rhythm"
	case quality >= 92:
		return "good - appropriate pacing"
	case quality >= 80:
		return "average - noticeable timing issues"
	case quality >= 65:
		return "poor - significant pacing concerns"
	case quality >= 40:
		return "very poor - major timing problems"
	default:
		return "unacceptable - severe communication issues"
	}
}

func communicationSummary(m SpeechMetrics) string {
	overall := overallCommunicationScore(m)

	var performanceLevel string
	switch {
	case overall >= 92:
		performanceLevel = "Excellent performance"
	case overall >= 82:
		performanceLevel = "Good performance"
	case overall >= 70:
		performanceLevel = "Average performance"
	case overall >= 55:
		performanceLevel = "Below average performance"
	case overall >= 35:
		performanceLevel = "Poor performance"
	default:
		performanceLevel = "Unacceptable performance"
	}

	feedback := ""
	if m.HesitationRate > 3 {
		feedback += " Excessive hesitation detected."
	}
	if m.AverageConfidence < 75 {
		feedback += " Low confidence and clarity."
	}
	if m.ToneScore < 70 {
		feedback += " Tone lacks professionalism."
	}

	return fmt.Sprintf("%s. Overall communication score: %d/100. %s with %s hesitation.%s",
		performanceLevel, overall, assessConfidence(m.AverageConfidence), assessHesitation(m.HesitationRate), feedback)
}
