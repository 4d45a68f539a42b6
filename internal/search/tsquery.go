// Package search compiles free-text queries, structural filters and sort
// modes into PostgreSQL SQL fragments with $N placeholders. The fragments are
// pure values; internal/service composes and executes them via pgx.
package search

import (
	"fmt"
	"strings"
)

// Queries whose stripped text (word separators intact) is shorter than this
// fall back to ILIKE substring matching, where the tokenized index would
// return nothing useful.
const shortQueryThreshold = 3

// tsquery operator characters are stripped from user input rather than
// escaped, so malformed input can never produce a tsquery parse error.
var tsquerySpecials = strings.NewReplacer(
	"&", "", "|", "", "!", "", "(", "", ")", "", ":", "",
)

// TextMode selects which predicate a compiled text query produces.
type TextMode int

const (
	// TextNone means no text predicate (empty input, or input that
	// stripped down to nothing).
	TextNone TextMode = iota
	// TextSubstring matches case-insensitive substrings across the
	// human-readable text columns.
	TextSubstring
	// TextRanked matches the weighted search vector and carries a
	// relevance projection.
	TextRanked
)

// TextQuery is the compiled form of a free-text search input.
type TextQuery struct {
	Mode TextMode
	// TSQuery is the to_tsquery expression (TextRanked only).
	TSQuery string
	// Term is the raw trimmed input (TextSubstring only).
	Term string
}

// Active reports whether the query contributes a predicate at all.
func (q TextQuery) Active() bool { return q.Mode != TextNone }

// Ranked reports whether a relevance score accompanies each row.
func (q TextQuery) Ranked() bool { return q.Mode == TextRanked }

// CompileText turns raw user input into a TextQuery.
//
// A quoted input compiles to a phrase query (adjacent words, in order).
// Otherwise the input is tokenized, stripped of tsquery operators and
// compiled with hybrid semantics: one word stands alone, two words are both
// required, and for three or more the first two are required while the rest
// are alternatives: w1 & w2 & (w3 | w4 | ...).
func CompileText(raw string) TextQuery {
	term := strings.TrimSpace(raw)
	if term == "" {
		return TextQuery{Mode: TextNone}
	}

	if phrase, ok := unquote(term); ok {
		words := tokenize(phrase)
		if len(words) == 0 {
			return TextQuery{Mode: TextNone}
		}
		return TextQuery{Mode: TextRanked, TSQuery: strings.Join(words, " <-> ")}
	}

	words := tokenize(term)
	if len(words) == 0 {
		return TextQuery{Mode: TextNone}
	}

	if len(strings.Join(words, " ")) < shortQueryThreshold {
		return TextQuery{Mode: TextSubstring, Term: term}
	}

	switch len(words) {
	case 1:
		return TextQuery{Mode: TextRanked, TSQuery: words[0]}
	case 2:
		return TextQuery{Mode: TextRanked, TSQuery: words[0] + " & " + words[1]}
	default:
		mandatory := words[0] + " & " + words[1]
		optional := strings.Join(words[2:], " | ")
		return TextQuery{Mode: TextRanked, TSQuery: mandatory + " & (" + optional + ")"}
	}
}

// Clause renders the WHERE predicate for the query. paramIdx is the first
// free $N placeholder; the returned args are bound in order from there.
func (q TextQuery) Clause(paramIdx int) (string, []any) {
	switch q.Mode {
	case TextSubstring:
		p := fmt.Sprintf("$%d", paramIdx)
		clause := "(vr.title ILIKE " + p +
			" OR vr.search_profile ILIKE " + p +
			" OR vr.search_metadata ILIKE " + p +
			" OR vr.public_summary ILIKE " + p + ")"
		return clause, []any{"%" + q.Term + "%"}
	case TextRanked:
		clause := fmt.Sprintf("vr.search_vector @@ to_tsquery('english', $%d)", paramIdx)
		return clause, []any{q.TSQuery}
	default:
		return "", nil
	}
}

// RelevanceSelect renders the relevance-score projection to be selected
// alongside each row, or "" when the query is not ranked. paramIdx must be
// the placeholder already bound to the tsquery expression by Clause.
func (q TextQuery) RelevanceSelect(paramIdx int) string {
	if q.Mode != TextRanked {
		return ""
	}
	return fmt.Sprintf("ts_rank_cd(vr.search_vector, to_tsquery('english', $%d)) AS relevance_score", paramIdx)
}

// unquote reports whether term is a quoted phrase and returns its trimmed
// body. An empty body still counts as a phrase so `""` compiles to no
// predicate instead of a substring match on the quote characters.
func unquote(term string) (string, bool) {
	if len(term) >= 2 && strings.HasPrefix(term, `"`) && strings.HasSuffix(term, `"`) {
		return strings.TrimSpace(term[1 : len(term)-1]), true
	}
	return "", false
}

func tokenize(term string) []string {
	var words []string
	for _, w := range strings.Fields(term) {
		w = tsquerySpecials.Replace(w)
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}
