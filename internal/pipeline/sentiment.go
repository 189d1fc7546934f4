package pipeline

import (
	"math"
	"strings"

	"tracespace/internal/models"
)

var positiveWords = []string{
	"love", "great", "good", "happy", "awesome", "amazing", "wonderful",
	"best", "beautiful", "excited", "win", "joy", "nice", "cool", "fun",
}

var negativeWords = []string{
	"hate", "bad", "terrible", "awful", "sad", "angry", "worst",
	"horrible", "fear", "lose", "pain", "wrong", "broken", "annoying",
}

const (
	sentimentBase = 0.2
	sentimentStep = 0.15
)

// SentimentColor maps the tone of a text onto an RGB color: positive texts
// lean green, negative lean red, neutral lean blue. More matched words push
// the dominant channel further up.
func SentimentColor(text string) models.Color {
	lower := strings.ToLower(text)
	var positive, negative int
	for _, word := range positiveWords {
		if strings.Contains(lower, word) {
			positive++
		}
	}
	for _, word := range negativeWords {
		if strings.Contains(lower, word) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return models.Color{R: sentimentBase, G: clamp01(0.5 + float64(positive)*sentimentStep), B: 0.3}
	case negative > positive:
		return models.Color{R: clamp01(0.5 + float64(negative)*sentimentStep), G: sentimentBase, B: 0.3}
	default:
		return models.Color{R: 0.3, G: 0.4, B: 0.8}
	}
}

func clamp01(v float64) float64 {
	return math.Min(v, 1.0)
}
