// Package skills matches a fixed vocabulary of skill terms against resume and job text.
package skills

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// defaultTerms is the built-in IT skill table. Order is the iteration order of
// every Set produced from the default vocabulary.
var defaultTerms = []string{
	"python", "java", "c++", "javascript", "sql", "aws", "azure", "docker", "kubernetes",
	"linux", "git", "html", "css", "react", "node.js", "agile", "scrum", "devops",
	"machine learning", "data analysis", "cloud", "networking", "security", "rest api",
	"typescript", "django", "flask", "spring", "mongodb", "postgresql", "nosql", "ci/cd",
	"terraform", "ansible", "pandas", "numpy", "tensorflow", "pytorch", "jira", "bash",
	"shell scripting", "php", "ruby", "go", "scala", "spark", "hadoop", "tableau", "power bi",
}

// wordClass is the set of runes that count as part of a word when checking term boundaries.
const wordClass = `\p{L}\p{N}_`

// Vocabulary is an immutable, ordered set of lowercase skill terms.
// It is safe for concurrent use.
type Vocabulary struct {
	terms    []string
	patterns []*regexp.Regexp
}

var defaultVocabulary = NewVocabulary(defaultTerms)

// Default returns the built-in IT skill vocabulary.
func Default() *Vocabulary {
	return defaultVocabulary
}

// NewVocabulary builds a vocabulary from terms. Terms are trimmed and lowercased;
// blanks and duplicates are dropped, keeping the first occurrence.
func NewVocabulary(terms []string) *Vocabulary {
	v := &Vocabulary{
		terms:    make([]string, 0, len(terms)),
		patterns: make([]*regexp.Regexp, 0, len(terms)),
	}
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		v.terms = append(v.terms, term)
		v.patterns = append(v.patterns, boundedPattern(term))
	}
	return v
}

// boundedPattern matches term literally when it is not flanked by word runes.
func boundedPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^` + wordClass + `])` + regexp.QuoteMeta(term) + `(?:[^` + wordClass + `]|$)`)
}

// Terms returns a copy of the vocabulary terms in order.
func (v *Vocabulary) Terms() []string {
	if v == nil {
		return []string{}
	}
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Has reports whether term (case-insensitive) is part of the vocabulary.
func (v *Vocabulary) Has(term string) bool {
	if v == nil {
		return false
	}
	term = strings.ToLower(strings.TrimSpace(term))
	for _, t := range v.terms {
		if t == term {
			return true
		}
	}
	return false
}

// LoadVocabulary reads a vocabulary file. Files ending in .json must hold a JSON
// array of strings; any other file is read as one term per line, with blank lines
// and lines starting with '#' ignored.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}

	var terms []string
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &terms); err != nil {
			return nil, fmt.Errorf("failed to parse vocabulary JSON %s: %w", path, err)
		}
	} else {
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			terms = append(terms, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to scan vocabulary file %s: %w", path, err)
		}
	}

	vocab := NewVocabulary(terms)
	if vocab.Len() == 0 {
		return nil, fmt.Errorf("vocabulary file %s contains no terms", path)
	}
	return vocab, nil
}
