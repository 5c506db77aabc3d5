package analysis

import (
	"fmt"
	"math"
	"strings"
)

// BuildReport aggregates all per-question text evaluations and speech
// analyses into the final interview report. Either list may be empty; a
// report is always produced. Headline scores are capped at 95 and attitude is
// clamped to [25, 90].
func BuildReport(questions []ScoredQuestion, speech []CommunicationAnalysis, role string) InterviewReport {
	avgTextScore := averageTextScore(questions)

	successful := successfulSpeech(speech)
	avgSpeechScore := averageSpeechScore(successful)

	hasText := len(questions) > 0
	hasSpeech := len(successful) > 0

	strengths, weaknesses, recommendations := generateInsights(questions, successful, avgSpeechScore, hasText)

	var overall, technical, communication int
	switch {
	case hasText && hasSpeech:
		overall = round((avgTextScore + avgSpeechScore) / 2 * 0.85)
		technical = round(avgTextScore * 0.90)
		communication = round(avgSpeechScore * 0.80)
	case hasText:
		overall = round(avgTextScore * 0.70)
		technical = round(avgTextScore * 0.85)
		communication = round(avgTextScore * 0.60)
	case hasSpeech:
		overall = round(avgSpeechScore * 0.60)
		technical = round(avgSpeechScore * 0.50)
		communication = round(avgSpeechScore * 0.75)
	default:
		overall, technical, communication = 25, 20, 30
	}

	overall = min(overall, 95)
	technical = min(technical, 95)
	communication = min(communication, 95)

	if role == "" {
		role = "Developer"
	}

	return InterviewReport{
		TechnicalKnowledge:  technical,
		CommunicationSkills: communication,
		Attitude:            clampInt(overall-5, 25, 90),
		OverallScore:        overall,
		Strengths:           strengths,
		Weaknesses:          weaknesses,
		Recommendations:     recommendations,
		Role:                role,
		TextAnalysisScore:   avgTextScore,
		SpeechAnalysisScore: avgSpeechScore,
	}
}

func averageTextScore(questions []ScoredQuestion) float64 {
	if len(questions) == 0 {
		return 0
	}
	sum := 0.0
	for _, q := range questions {
		sum += float64(q.Evaluation.OverallScore)
	}
	return sum / float64(len(questions))
}

func successfulSpeech(speech []CommunicationAnalysis) []CommunicationAnalysis {
	var ok []CommunicationAnalysis
	for _, s := range speech {
		if s.Error == "" {
			ok = append(ok, s)
		}
	}
	return ok
}

func averageSpeechScore(successful []CommunicationAnalysis) float64 {
	if len(successful) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range successful {
		sum += float64(s.OverallScore)
	}
	return sum / float64(len(successful))
}

// generateInsights scans per-question and aggregate scores against fixed
// thresholds and emits the strength, weakness and recommendation strings. The
// default texts emitted when nothing matched are part of the contract.
func generateInsights(questions []ScoredQuestion, successful []CommunicationAnalysis, avgSpeechScore float64, hasText bool) (strengths, weaknesses, recommendations []string) {
	for _, q := range questions {
		category := strings.ToLower(q.Category)
		switch {
		case q.Evaluation.OverallScore >= 85:
			strengths = append(strengths, fmt.Sprintf("Strong answer for %s question: %q", category, truncate(q.Question, 60)+"..."))
		case q.Evaluation.OverallScore < 50:
			weaknesses = append(weaknesses, fmt.Sprintf("Needs improvement in %s: %s", category, q.Evaluation.OverallSummary))
			recommendations = append(recommendations, fmt.Sprintf("Focus on providing more detailed answers for %s questions", category))
		case q.Evaluation.OverallScore < 70:
			weaknesses = append(weaknesses, fmt.Sprintf("Mediocre performance in %s - needs more depth and technical detail", category))
		}
	}

	if len(successful) > 0 {
		avgConfidence := 0.0
		avgHesitation := 0.0
		neutralCount := 0
		for _, s := range successful {
			avgConfidence += s.Confidence.Score
			avgHesitation += s.Hesitation.Rate
			if strings.Contains(s.Tone.Assessment, "neutral") {
				neutralCount++
			}
		}
		avgConfidence /= float64(len(successful))
		avgHesitation /= float64(len(successful))

		if avgConfidence >= 90 {
			strengths = append(strengths, "Demonstrates confident speaking and clear articulation")
		} else if avgConfidence < 75 {
			weaknesses = append(weaknesses, "Could improve confidence in verbal communication")
			recommendations = append(recommendations, "Practice speaking with more confidence and clarity")
		} else if avgConfidence < 85 {
			weaknesses = append(weaknesses, "Moderate confidence but could be more assertive in delivery")
		}

		if avgHesitation > 3 {
			weaknesses = append(weaknesses, "High hesitation rate indicates uncertainty in responses")
			recommendations = append(recommendations, "Practice answering questions more fluently to reduce hesitation")
		} else if avgHesitation > 1.5 {
			weaknesses = append(weaknesses, "Noticeable hesitation patterns - practice speaking more fluently")
		} else if avgHesitation < 1 {
			strengths = append(strengths, "Shows fluent communication with minimal hesitation")
		}

		if float64(neutralCount)/float64(len(successful)) > 0.5 {
			recommendations = append(recommendations, "Consider adding more enthusiasm and energy to responses")
			weaknesses = append(weaknesses, "Tone lacks enthusiasm and professional energy")
		}

		if !hasText {
			strengths = append(strengths, fmt.Sprintf("Provided audio responses for %d questions", len(successful)))
			if avgSpeechScore >= 80 {
				strengths = append(strengths, "Strong verbal communication skills demonstrated")
			} else if avgSpeechScore < 60 {
				weaknesses = append(weaknesses, "Verbal communication skills need significant improvement")
			}
		}
	}

	hasSpeech := len(successful) > 0

	if len(strengths) == 0 {
		if hasSpeech {
			strengths = append(strengths, "Participated actively in the voice portion of the interview")
		} else {
			strengths = append(strengths, "Completed the interview process")
		}
		weaknesses = append(weaknesses, "Performance did not demonstrate clear strengths in key areas")
	}

	if len(weaknesses) == 0 {
		switch {
		case !hasText && !hasSpeech:
			weaknesses = append(weaknesses,
				"Unable to analyze responses - please ensure both text and audio responses are provided",
				"Incomplete interview submission severely impacts evaluation")
		case !hasText:
			weaknesses = append(weaknesses,
				"Text analysis unavailable - focus on providing written responses",
				"Missing written responses significantly limits technical evaluation")
		default:
			weaknesses = append(weaknesses,
				"Needs to provide more comprehensive and detailed answers",
				"Responses lack depth and technical sophistication")
		}
	}

	if len(recommendations) == 0 {
		switch {
		case !hasText && !hasSpeech:
			recommendations = append(recommendations,
				"Ensure all interview questions are answered completely",
				"Provide both written and verbal responses when possible",
				"Focus on technical depth and professional communication")
		case !hasText:
			recommendations = append(recommendations,
				"Focus on providing detailed written responses to interview questions",
				"Develop stronger technical writing and explanation skills")
		default:
			recommendations = append(recommendations,
				"Focus on providing more detailed and relevant responses to interview questions",
				"Improve technical depth and communication clarity")
		}
	}

	return strengths, weaknesses, recommendations
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func round(x float64) int {
	return int(math.Round(x))
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
