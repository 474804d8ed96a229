// Marquee - Semantic Film Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package tokenize splits free text into lowercase word tokens.
// It is shared by the hashing embedder and the explanation detectors so both
// see the same vocabulary.
package tokenize

import (
	"strings"
	"unicode"
)

// Words returns the lowercase letter/digit runs of s, in order, including stopwords.
func Words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// Terms returns Words(s) without stopwords and single-character tokens.
func Terms(s string) []string {
	words := Words(s)
	out := words[:0]
	for _, w := range words {
		if len([]rune(w)) > 1 && !IsStopword(w) {
			out = append(out, w)
		}
	}
	return out
}

// UniqueTerms returns Terms(s) with duplicates removed, keeping first occurrence order.
func UniqueTerms(s string) []string {
	terms := Terms(s)
	seen := make(map[string]struct{}, len(terms))
	out := terms[:0]
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// IsStopword reports whether w (lowercase) is a common English function word.
func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}

var stopwords = func() map[string]struct{} {
	list := strings.Fields(`
		a about after again against all also an and any are as at be because been
		before being between both but by can could did do does doing down during each
		few for from further had has have having he her here hers herself him himself
		his how i if in into is it its itself just me more most my myself no nor not
		now of off on once only or other our ours ourselves out over own same she
		should so some such than that the their theirs them themselves then there
		these they this those through to too under until up very was we were what
		when where which while who whom why will with would you your yours yourself
		yourselves film films movie movies story`)
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}()
