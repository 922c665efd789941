// Package diagnose ranks troubleshooting entries against a free-text
// description of symptoms.
//
// Scoring is deliberately simple and bounded: for every symptom phrase of an
// entry, a whole-phrase match in either direction is worth 2 points and every
// query token longer than two characters found inside the phrase is worth 1.
package diagnose

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fundestpuente/agromind-mcp/internal/catalog"
)

const (
	phraseScore = 2
	tokenScore  = 1

	// minTokenLen is exclusive: tokens must be longer than this many runes.
	minTokenLen = 2
)

// Match is a scored troubleshooting entry.
type Match struct {
	catalog.Diagnosis
	Score int
}

// Rank scores every diagnosis against query and returns those with a
// positive score, best first. Ties keep the input order.
func Rank(query string, diagnoses []catalog.Diagnosis) []Match {
	q := normalizeQuery(query)
	if q == "" {
		return nil
	}
	tokens := Tokenize(q)

	var matches []Match
	for _, d := range diagnoses {
		if score := scoreEntry(q, tokens, d.Entry.Symptoms); score > 0 {
			matches = append(matches, Match{Diagnosis: d, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}

// Best returns the top-ranked diagnosis for query.
func Best(query string, diagnoses []catalog.Diagnosis) (Match, bool) {
	matches := Rank(query, diagnoses)
	if len(matches) == 0 {
		return Match{}, false
	}
	return matches[0], true
}

// Score computes the relevance of one entry's symptom phrases for query.
func Score(query string, symptoms []string) int {
	q := normalizeQuery(query)
	if q == "" {
		return 0
	}
	return scoreEntry(q, Tokenize(q), symptoms)
}

func scoreEntry(query string, tokens []string, symptoms []string) int {
	score := 0
	for _, s := range symptoms {
		phrase := strings.ToLower(s)
		if strings.Contains(query, phrase) || strings.Contains(phrase, query) {
			score += phraseScore
		}
		for _, tok := range tokens {
			if utf8.RuneCountInString(tok) > minTokenLen && strings.Contains(phrase, tok) {
				score += tokenScore
			}
		}
	}
	return score
}

// Tokenize splits a query into lowercase tokens on anything that is not a
// letter or digit. Accented letters stay inside their word.
// "Raíces marrones, olor" -> ["raíces", "marrones", "olor"]
func Tokenize(query string) []string {
	return strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
