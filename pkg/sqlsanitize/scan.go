package sqlsanitize

import "strings"

// scanState holds the transient, per-call scratch a scan needs. It is
// created on entry to Sanitize and discarded on return; its text buffers
// may be backed by the process-wide reusable scratch in scratch.go.
type scanState struct {
	sanitized *strings.Builder
	summary   *strings.Builder

	// captureNextTokenAsTarget arms the next identifier-like token to be
	// appended to summary.
	captureNextTokenAsTarget bool
	// inFromClause re-arms captureNextTokenAsTarget on a comma at
	// identifier-end, so comma-separated FROM targets all land in summary.
	inFromClause bool
	// justSawInsert tracks whether the immediately preceding token was the
	// INSERT operation keyword, so a following INTO can contribute to
	// summary as the compound "INSERT INTO" phrase (see DESIGN.md).
	// Whitespace and comments between the two do not clear it.
	justSawInsert bool
}

func isIdentifierStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierPart(c byte) bool {
	return isIdentifierStart(c) || isDigit(c) || c == '.'
}

// Sanitize runs the tokenizer/state machine over input and returns the
// derived StatementInfo. It is a total, pure function: every input,
// including the empty string, produces a result without signaling error.
func Sanitize(input string) StatementInfo {
	if input == "" {
		return StatementInfo{}
	}

	metrics := currentMetrics()

	sanitizedBuf, sanitizedShared := sanitizedScratch.claim(len(input))
	metrics.scratchClaim("sanitized", sanitizedShared)
	if sanitizedShared {
		defer sanitizedScratch.release()
	}

	summaryBuf, summaryShared := summaryScratch.claim(len(input) / 4)
	metrics.scratchClaim("summary", summaryShared)
	if summaryShared {
		defer summaryScratch.release()
	}

	st := &scanState{sanitized: sanitizedBuf, summary: summaryBuf}

	i := 0
	n := len(input)
	for i < n {
		if consumed, ok := scanBlockComment(input, i); ok {
			i += consumed
			continue
		}
		if consumed, ok := scanLineComment(input, i); ok {
			i += consumed
			continue
		}

		if input[i] == '\'' {
			consumed := scanStringLiteral(input, i)
			st.sanitized.WriteByte('?')
			i += consumed
			continue
		}
		if consumed, ok := scanHexLiteral(input, i); ok {
			st.sanitized.WriteByte('?')
			i += consumed
			continue
		}
		if consumed, ok := scanNumericLiteral(input, i); ok {
			st.sanitized.WriteByte('?')
			i += consumed
			continue
		}

		if op := matchAnyKeyword(input, i, operationKeywords); op != "" {
			i += st.scanOperation(input, i, op)
			continue
		}

		if verb := matchAnyKeyword(input, i, ddlKeywords); verb != "" {
			i += st.scanDDL(input, i, verb)
			continue
		}

		if clause := matchAnyKeyword(input, i, clauseKeywords); clause != "" {
			i += st.scanClause(input, i, clause)
			continue
		}

		if isIdentifierStart(input[i]) {
			i += st.scanIdentifier(input, i)
			continue
		}

		st.sanitized.WriteByte(input[i])
		if !isSQLSpace(input[i]) {
			st.justSawInsert = false
		}
		i++
	}

	return StatementInfo{
		SanitizedSQL: st.sanitized.String(),
		Summary:      st.summary.String(),
	}
}

// scanOperation handles SELECT/UPDATE/INSERT/DELETE (spec.md §4.1 rule 3).
// UPDATE is the one operation whose target directly follows the verb with
// no introducing FROM/INTO/JOIN, so it arms capture itself; see
// DESIGN.md for why this departs from the "do not set capture flags" text.
func (st *scanState) scanOperation(input string, i int, kw string) int {
	verbatim := input[i : i+len(kw)]
	st.sanitized.WriteString(verbatim)
	if st.summary.Len() > 0 {
		st.summary.WriteByte(' ')
	}
	st.summary.WriteString(verbatim)

	st.captureNextTokenAsTarget = kw == "UPDATE"
	st.inFromClause = false
	st.justSawInsert = kw == "INSERT"

	return len(kw)
}

// scanDDL handles CREATE/ALTER/DROP (spec.md §4.1 "DDL handling").
func (st *scanState) scanDDL(input string, i int, verb string) int {
	start := i
	verbatim := input[i : i+len(verb)]
	st.sanitized.WriteString(verbatim)
	for k := 0; k < len(verbatim); k++ {
		st.normalizedAppendSummary(verbatim[k])
	}
	i += len(verb)

	n := len(input)
	for i < n && isSQLSpace(input[i]) {
		st.sanitized.WriteByte(input[i])
		i++
	}

	if target := matchAnyKeyword(input, i, ddlTargetKeywords); target != "" {
		targetVerbatim := input[i : i+len(target)]
		st.sanitized.WriteString(targetVerbatim)
		st.normalizedAppendSummary(' ')
		for k := 0; k < len(targetVerbatim); k++ {
			st.normalizedAppendSummary(targetVerbatim[k])
		}
		i += len(target)
		st.captureNextTokenAsTarget = true
	}

	st.inFromClause = false
	st.justSawInsert = false
	return i - start
}

// scanClause handles INTO/FROM/JOIN (spec.md §4.1 rule 5). INTO
// additionally contributes to summary when it immediately follows INSERT,
// forming the "INSERT INTO" compound phrase from spec.md's own worked
// example and §1's illustrative summary format.
func (st *scanState) scanClause(input string, i int, kw string) int {
	verbatim := input[i : i+len(kw)]
	st.sanitized.WriteString(verbatim)

	if kw == "INTO" && st.justSawInsert {
		st.summary.WriteByte(' ')
		st.summary.WriteString(verbatim)
	}

	st.captureNextTokenAsTarget = true
	if kw == "FROM" {
		st.inFromClause = true
	}
	st.justSawInsert = false

	return len(kw)
}

// scanIdentifier handles [A-Za-z_][A-Za-z_0-9.]* (spec.md §4.1 rule 6).
func (st *scanState) scanIdentifier(input string, i int) int {
	start := i
	n := len(input)
	i++
	for i < n && isIdentifierPart(input[i]) {
		i++
	}
	token := input[start:i]
	st.sanitized.WriteString(token)

	if st.captureNextTokenAsTarget {
		st.summary.WriteByte(' ')
		st.summary.WriteString(token)
		st.captureNextTokenAsTarget = false
	}

	if st.inFromClause && i < n && input[i] == ',' {
		st.captureNextTokenAsTarget = true
	}

	st.justSawInsert = false
	return i - start
}

// normalizedAppendSummary appends c to summary unless it is whitespace and
// either summary is empty or its last byte is already whitespace —
// collapsing the whitespace runs the DDL path copies from the input.
func (st *scanState) normalizedAppendSummary(c byte) {
	if isSQLSpace(c) {
		if st.summary.Len() == 0 {
			return
		}
		last := st.summary.String()[st.summary.Len()-1]
		if isSQLSpace(last) {
			return
		}
	}
	st.summary.WriteByte(c)
}

func isSQLSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
