package storage

import (
	"context"
	"strings"
	"unicode"

	"juan-note/internal/contextutil"
)

const (
	// DefaultSearchLimit is used when a search names no limit.
	DefaultSearchLimit = 50
	// MaxSearchLimit caps the page size of a search.
	MaxSearchLimit = 100
)

// ftsOperatorChars are characters that give a query full-text syntax.
const ftsOperatorChars = `"*():^+-`

var ftsKeywords = map[string]bool{"AND": true, "OR": true, "NOT": true, "NEAR": true}

// IsStructuredQuery reports whether q should go to the full-text index
// first: it uses operator punctuation or keywords, or has more than three terms.
func IsStructuredQuery(q string) bool {
	return hasOperators(q) || len(strings.Fields(q)) > 3
}

func hasOperators(q string) bool {
	if strings.ContainsAny(q, ftsOperatorChars) {
		return true
	}
	for _, term := range strings.Fields(q) {
		if ftsKeywords[term] || strings.HasPrefix(term, "NEAR/") {
			return true
		}
	}
	return false
}

// BuildMatchExpression turns q into a MATCH expression. Plain queries become
// AND-joined prefix matches on title or body. Queries that already use
// full-text syntax keep their operators, parentheses, quoted phrases and
// column filters, and every other bare term gets a trailing '*'.
func BuildMatchExpression(q string) string {
	q = strings.TrimSpace(q)
	if hasOperators(q) {
		return prefixTerms(q)
	}
	terms := strings.Fields(q)
	groups := make([]string, 0, len(terms))
	for _, t := range terms {
		groups = append(groups, "(title:"+t+"* OR body:"+t+"*)")
	}
	return strings.Join(groups, " AND ")
}

func prefixTerms(q string) string {
	var b strings.Builder
	for _, tok := range matchTokens(q) {
		if b.Len() > 0 && tok != ")" && !strings.HasSuffix(b.String(), "(") {
			b.WriteByte(' ')
		}
		if needsPrefix(tok) {
			tok += "*"
		}
		b.WriteString(tok)
	}
	return b.String()
}

// matchTokens splits q into parentheses, quoted phrases and whitespace
// separated words. An unterminated phrase runs to the end of q.
func matchTokens(q string) []string {
	var (
		tokens []string
		word   strings.Builder
	)
	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}

	for i := 0; i < len(q); i++ {
		switch c := q[i]; {
		case c == '"':
			end := strings.IndexByte(q[i+1:], '"')
			if end < 0 {
				word.WriteString(q[i:])
				i = len(q)
				break
			}
			word.WriteString(q[i : i+end+2])
			i += end + 1
		case c == '(' || c == ')':
			flush()
			tokens = append(tokens, string(c))
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			word.WriteByte(c)
		}
	}
	flush()
	return tokens
}

func needsPrefix(tok string) bool {
	switch {
	case tok == "(" || tok == ")":
		return false
	case ftsKeywords[tok] || strings.HasPrefix(tok, "NEAR/"):
		return false
	case strings.ContainsAny(tok, `"*:`):
		return false
	}
	return strings.IndexFunc(tok, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}

// stripOperators removes full-text punctuation and keywords so the rest can
// be matched as a plain substring.
func stripOperators(q string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(ftsOperatorChars, r) {
			return ' '
		}
		return r
	}, q)

	terms := strings.Fields(cleaned)
	kept := terms[:0]
	for _, t := range terms {
		if !ftsKeywords[t] && !strings.HasPrefix(t, "NEAR/") {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " ")
}

// escapeLike escapes the LIKE wildcards in s for use with ESCAPE '\'.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Search returns notes matching q.
func (r *NoteRepo) Search(ctx context.Context, q SearchQuery) ([]Note, error) {
	notes, _, err := r.SearchWithStrategy(ctx, q)
	return notes, err
}

// SearchWithStrategy runs a search and also reports which strategy answered.
// Structured queries try the full-text index and fall back to substring
// matching if the index rejects them; short plain queries go straight to
// substring matching.
func (r *NoteRepo) SearchWithStrategy(ctx context.Context, q SearchQuery) ([]Note, SearchStrategy, error) {
	limit, offset := normalizePage(q.Limit, q.Offset)
	query := strings.TrimSpace(q.Query)

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if query == "" {
		notes, err := queryNotes(ctx, r.db.conn,
			"SELECT "+noteColumns+" FROM notes n ORDER BY "+defaultNoteOrder+" LIMIT ? OFFSET ?",
			limit, offset)
		return notes, SearchAll, err
	}

	if !IsStructuredQuery(query) {
		notes, err := r.substringSearch(ctx, query, limit, offset)
		return notes, SearchSubstring, err
	}

	notes, err := r.fullTextSearch(ctx, BuildMatchExpression(query), limit, offset)
	if err == nil {
		return notes, SearchFullText, nil
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "full-text search failed, using substring match",
		"query", query, "error", err)
	notes, err = r.substringSearch(ctx, stripOperators(query), limit, offset)
	return notes, SearchFallback, err
}

func (r *NoteRepo) fullTextSearch(ctx context.Context, match string, limit, offset int) ([]Note, error) {
	return queryNotes(ctx, r.db.conn,
		"SELECT "+noteColumns+`
		 FROM notes_fts JOIN notes n ON n.id = notes_fts.docid
		 WHERE notes_fts MATCH ?
		 ORDER BY fts_rank(matchinfo(notes_fts, 'pcx')) DESC, `+defaultNoteOrder+`
		 LIMIT ? OFFSET ?`,
		match, limit, offset)
}

func (r *NoteRepo) substringSearch(ctx context.Context, text string, limit, offset int) ([]Note, error) {
	pattern := "%" + escapeLike(text) + "%"
	return queryNotes(ctx, r.db.conn,
		"SELECT "+noteColumns+`
		 FROM notes n
		 WHERE n.title LIKE ? ESCAPE '\' OR n.content LIKE ? ESCAPE '\'
		 ORDER BY `+defaultNoteOrder+`
		 LIMIT ? OFFSET ?`,
		pattern, pattern, limit, offset)
}
