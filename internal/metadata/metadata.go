// Package metadata tokenizes the free-form text users type for add, edit
// and list commands: `@project`, `#tag` and `+l/+m/+h/+c` priority markers
// mixed with plain words.
package metadata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tdx-cli/tdx/internal/task"
)

// ErrAmbiguousMetadata is matched by validation errors reporting more than
// one project or priority in a single input.
var ErrAmbiguousMetadata = errors.New("ambiguous metadata")

// TooManyError reports a metadata kind that appeared more often than
// allowed. It satisfies errors.Is(err, ErrAmbiguousMetadata).
type TooManyError struct {
	What  string
	Count int
}

func (e *TooManyError) Error() string {
	return fmt.Sprintf("too many %s markers: %d (at most one allowed)", e.What, e.Count)
}

func (e *TooManyError) Is(target error) bool {
	return target == ErrAmbiguousMetadata
}

// Kind discriminates token variants.
type Kind int

const (
	KindWord Kind = iota
	KindProject
	KindTag
	KindPriority
)

// Token is one parsed unit of user input. Value holds the project name, tag
// name or plain word; Priority is set for KindPriority tokens.
type Token struct {
	Kind     Kind
	Value    string
	Priority task.Priority
}

// Tokenize splits the given arguments on whitespace and classifies each
// word. It is total: a word that matches no marker falls back to a plain
// word, including bare `+x` with an unknown priority code.
func Tokenize(args ...string) []Token {
	var tokens []Token

	for _, arg := range args {
		for _, word := range strings.Fields(arg) {
			tokens = append(tokens, classify(word))
		}
	}

	return tokens
}

func classify(word string) Token {
	if len(word) < 2 {
		return Token{Kind: KindWord, Value: word}
	}

	switch word[0] {
	case '@':
		return Token{Kind: KindProject, Value: word[1:]}
	case '#':
		return Token{Kind: KindTag, Value: word[1:]}
	case '+':
		if len(word) == 2 {
			switch word[1] {
			case 'l':
				return Token{Kind: KindPriority, Priority: task.PriorityLow}
			case 'm':
				return Token{Kind: KindPriority, Priority: task.PriorityMedium}
			case 'h':
				return Token{Kind: KindPriority, Priority: task.PriorityHigh}
			case 'c':
				return Token{Kind: KindPriority, Priority: task.PriorityCritical}
			}
		}
	}

	return Token{Kind: KindWord, Value: word}
}

// FreeText joins the plain words of a token sequence with single spaces,
// preserving their relative order.
func FreeText(tokens []Token) string {
	var words []string
	for _, tok := range tokens {
		if tok.Kind == KindWord {
			words = append(words, tok.Value)
		}
	}
	return strings.Join(words, " ")
}

// Validate rejects token sequences carrying more than one project or more
// than one priority. Tags are cumulative and never rejected.
func Validate(tokens []Token) error {
	var projects, priorities int

	for _, tok := range tokens {
		switch tok.Kind {
		case KindProject:
			projects++
		case KindPriority:
			priorities++
		}
	}

	if projects > 1 {
		return &TooManyError{What: "project", Count: projects}
	}
	if priorities > 1 {
		return &TooManyError{What: "priority", Count: priorities}
	}
	return nil
}
