package pipeline

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"tracespace/internal/models"
	"tracespace/internal/providers"
	"tracespace/internal/structures"
)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"of": {}, "at": {}, "by": {}, "for": {}, "with": {}, "about": {},
	"to": {}, "from": {}, "in": {}, "on": {}, "up": {}, "down": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"it": {}, "its": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"i": {}, "you": {}, "he": {}, "she": {}, "we": {}, "they": {},
	"my": {}, "your": {}, "his": {}, "her": {}, "our": {}, "their": {},
	"me": {}, "him": {}, "them": {}, "us": {}, "as": {}, "so": {},
	"not": {}, "no": {}, "do": {}, "does": {}, "did": {}, "have": {},
	"has": {}, "had": {}, "will": {}, "would": {}, "can": {}, "could": {},
	"just": {}, "more": {}, "very": {}, "what": {}, "when": {}, "who": {},
}

// Positioner projects texts into the 3-D scene: TF-IDF features reduced to
// three principal components, scaled into the configured coordinate range.
// Inputs too small or too uniform to project fall back to random placement.
type Positioner struct {
	maxFeatures   int
	positionRange float64
	logger        providers.Logger
}

func NewPositioner(conf *structures.Config, logger providers.Logger) *Positioner {
	return &Positioner{
		maxFeatures:   conf.Pipeline.MaxFeatures,
		positionRange: conf.Pipeline.PositionRange,
		logger:        logger,
	}
}

// Positions returns one coordinate per text, in input order.
func (p *Positioner) Positions(texts []string) []models.Position {
	if len(texts) == 0 {
		return nil
	}
	matrix, ok := p.vectorize(texts)
	if !ok {
		p.logger.Debugf(providers.TypePipeline, "Vocabulary too small to project %d texts, placing randomly", len(texts))
		return p.randomPositions(len(texts))
	}
	projected, ok := p.project(matrix)
	if !ok {
		p.logger.Debugf(providers.TypePipeline, "Projection failed for %d texts, placing randomly", len(texts))
		return p.randomPositions(len(texts))
	}
	return p.scale(projected)
}

// vectorize builds the TF-IDF matrix over the most frequent terms. Reports
// false when the vocabulary is too small to carry three components.
func (p *Positioner) vectorize(texts []string) (*mat.Dense, bool) {
	docs := make([][]string, len(texts))
	docFreq := make(map[string]int)
	for i, text := range texts {
		tokens := tokenize(text)
		docs[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			docFreq[tok]++
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if docFreq[terms[i]] != docFreq[terms[j]] {
			return docFreq[terms[i]] > docFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > p.maxFeatures {
		terms = terms[:p.maxFeatures]
	}
	if len(texts) < 3 || len(terms) < 3 {
		return nil, false
	}

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}

	n, d := len(texts), len(terms)
	matrix := mat.NewDense(n, d, nil)
	for i, tokens := range docs {
		if len(tokens) == 0 {
			continue
		}
		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
		}
		for term, count := range counts {
			j, ok := index[term]
			if !ok {
				continue
			}
			tf := float64(count) / float64(len(tokens))
			idf := math.Log(float64(1+n)/float64(1+docFreq[term])) + 1
			matrix.Set(i, j, tf*idf)
		}

		row := matrix.RawRowView(i)
		var norm float64
		for _, v := range row {
			norm += v * v
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
	}
	return matrix, true
}

// project reduces the feature matrix to its first three principal
// components.
func (p *Positioner) project(matrix *mat.Dense) (*mat.Dense, bool) {
	n, d := matrix.Dims()
	if n < 3 || d < 3 {
		return nil, false
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(matrix, nil); !ok {
		return nil, false
	}
	var vectors mat.Dense
	pc.VectorsTo(&vectors)

	centered := mat.NewDense(n, d, nil)
	for j := 0; j < d; j++ {
		mean := stat.Mean(mat.Col(nil, j, matrix), nil)
		for i := 0; i < n; i++ {
			centered.Set(i, j, matrix.At(i, j)-mean)
		}
	}

	var projected mat.Dense
	projected.Mul(centered, vectors.Slice(0, d, 0, 3))
	return &projected, true
}

// scale fits the projected coordinates into ±positionRange, preserving their
// relative geometry.
func (p *Positioner) scale(projected *mat.Dense) []models.Position {
	n, _ := projected.Dims()
	var maxAbs float64
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			if v := math.Abs(projected.At(i, j)); v > maxAbs {
				maxAbs = v
			}
		}
	}
	if maxAbs < 1e-12 {
		return p.randomPositions(n)
	}

	factor := p.positionRange / maxAbs
	positions := make([]models.Position, n)
	for i := range positions {
		positions[i] = models.Position{
			X: projected.At(i, 0) * factor,
			Y: projected.At(i, 1) * factor,
			Z: projected.At(i, 2) * factor,
		}
	}
	return positions
}

func (p *Positioner) randomPositions(n int) []models.Position {
	positions := make([]models.Position, n)
	for i := range positions {
		positions[i] = models.Position{
			X: (rand.Float64()*2 - 1) * p.positionRange,
			Y: (rand.Float64()*2 - 1) * p.positionRange,
			Z: (rand.Float64()*2 - 1) * p.positionRange,
		}
	}
	return positions
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var tokens []string
	for _, field := range fields {
		if len(field) < 2 {
			continue
		}
		if _, ok := stopWords[field]; ok {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}
