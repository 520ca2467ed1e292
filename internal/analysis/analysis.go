// Package analysis scores transcript text for sentiment and pulls out the
// most frequent phrases. It is lexicon based and runs fully offline.
package analysis

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"yt-harvester/internal/model"
)

const DefaultKeywordCount = 10

type Analyzer struct{}

func New() Analyzer {
	return Analyzer{}
}

// Sentiment averages the lexicon scores of every opinion word in text.
// Polarity is in [-1, 1] and subjectivity in [0, 1]; text without opinion
// words scores 0 on both.
func (Analyzer) Sentiment(text string) model.Sentiment {
	tokens := tokenize(text)

	var polSum, subjSum float64
	matched := 0
	negateFor := 0
	boost := 1.0
	for _, tok := range tokens {
		if negators[tok] {
			negateFor = 3
			continue
		}
		if f, ok := intensifiers[tok]; ok {
			boost *= f
			continue
		}
		score, ok := lexicon[tok]
		if !ok {
			if negateFor > 0 {
				negateFor--
			}
			boost = 1.0
			continue
		}
		pol := score.polarity * boost
		subj := score.subjectivity * boost
		if negateFor > 0 {
			pol *= -0.5
		}
		polSum += clamp(pol, -1, 1)
		subjSum += clamp(subj, 0, 1)
		matched++
		negateFor = 0
		boost = 1.0
	}
	if matched == 0 {
		return model.Sentiment{}
	}
	return model.Sentiment{
		Polarity:     clamp(polSum/float64(matched), -1, 1),
		Subjectivity: clamp(subjSum/float64(matched), 0, 1),
	}
}

// Keywords returns up to topN phrases ordered by frequency, ties broken by
// first appearance. A phrase is a run of up to three consecutive non-stopword
// tokens inside one clause; single words need at least four letters to count.
func (Analyzer) Keywords(text string, topN int) []string {
	if topN <= 0 {
		return []string{}
	}

	type phraseStat struct {
		count int
		first int
	}
	stats := make(map[string]*phraseStat)
	order := 0
	record := func(run []string) {
		for start := 0; start < len(run); start += 3 {
			end := min(start+3, len(run))
			words := run[start:end]
			if len(words) == 1 && len([]rune(words[0])) < 4 {
				continue
			}
			p := strings.Join(words, " ")
			if s, ok := stats[p]; ok {
				s.count++
				continue
			}
			stats[p] = &phraseStat{count: 1, first: order}
			order++
		}
	}

	run := make([]string, 0, 8)
	for _, clause := range clauses(text) {
		for _, tok := range tokenize(clause) {
			if stopwords[tok] || isNumeric(tok) {
				record(run)
				run = run[:0]
				continue
			}
			run = append(run, tok)
		}
		record(run)
		run = run[:0]
	}

	phrases := make([]string, 0, len(stats))
	for p := range stats {
		phrases = append(phrases, p)
	}
	slices.SortFunc(phrases, func(a, b string) int {
		if c := cmp.Compare(stats[b].count, stats[a].count); c != 0 {
			return c
		}
		return cmp.Compare(stats[a].first, stats[b].first)
	})
	if len(phrases) > topN {
		phrases = phrases[:topN]
	}
	return phrases
}

// tokenize case-folds text and splits it into words. Apostrophes inside a
// word are kept so contractions such as "isn't" stay whole.
func tokenize(text string) []string {
	folded := cases.Fold().String(text)
	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'’")
		if f == "" {
			continue
		}
		out = append(out, strings.ReplaceAll(f, "’", "'"))
	}
	return out
}

// clauses splits text at punctuation other than apostrophes so phrases never
// span a sentence or list boundary.
func clauses(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsPunct(r) && r != '\'' && r != '’'
	})
}

func isNumeric(tok string) bool {
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
