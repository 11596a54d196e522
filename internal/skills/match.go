package skills

import "strings"

// Set is a collection of distinct vocabulary terms, kept in vocabulary order.
type Set []string

// Extract returns the vocabulary terms that occur in text as whole words.
// Matching is case-insensitive and each term appears at most once in the result.
func Extract(text string, vocab *Vocabulary) Set {
	found := Set{}
	if text == "" || vocab.Len() == 0 {
		return found
	}

	lowered := strings.ToLower(text)
	for i, pattern := range vocab.patterns {
		if pattern.MatchString(lowered) {
			found = append(found, vocab.terms[i])
		}
	}
	return found
}

// Intersect returns the terms of s that are also in other, in the order of s.
func (s Set) Intersect(other Set) Set {
	index := other.index()
	out := Set{}
	for _, t := range s {
		if _, ok := index[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Difference returns the terms of s that are not in other, in the order of s.
func (s Set) Difference(other Set) Set {
	index := other.index()
	out := Set{}
	for _, t := range s {
		if _, ok := index[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// Strings returns the set as a plain, non-nil string slice.
func (s Set) Strings() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func (s Set) index() map[string]struct{} {
	m := make(map[string]struct{}, len(s))
	for _, t := range s {
		m[t] = struct{}{}
	}
	return m
}
