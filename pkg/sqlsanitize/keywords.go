package sqlsanitize

// operationKeywords are the DML verbs that name a query's operation; each
// occurrence is appended to the Summary where it appears in the input.
var operationKeywords = []string{"SELECT", "UPDATE", "INSERT", "DELETE"}

// ddlKeywords are the schema-modifying verbs handled by scanDDL.
var ddlKeywords = []string{"CREATE", "ALTER", "DROP"}

// clauseKeywords name the targets introduced by INTO/FROM/JOIN, tried in
// this order at every scan position that isn't already claimed by a
// higher-precedence rule.
var clauseKeywords = []string{"INTO", "FROM", "JOIN"}

// ddlTargetKeywords are attempted, in order, right after a DDL verb and
// its trailing whitespace; the first hit arms target capture.
var ddlTargetKeywords = []string{"TABLE", "INDEX", "PROCEDURE", "VIEW", "DATABASE"}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

func upperByte(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// matchKeyword reports whether kw (already upper-case) occurs at input[i:]
// case-insensitively and is word-bounded: the character immediately
// following the match, if any, must not be a word character. A partial
// match at end of input never fires.
func matchKeyword(input string, i int, kw string) bool {
	end := i + len(kw)
	if end > len(input) {
		return false
	}
	for k := 0; k < len(kw); k++ {
		if upperByte(input[i+k]) != kw[k] {
			return false
		}
	}
	if end < len(input) && isWordChar(input[end]) {
		return false
	}
	return true
}

// matchAnyKeyword tries each candidate (already upper-case) in order and
// returns the first that matches at position i, or "" if none do.
func matchAnyKeyword(input string, i int, candidates []string) string {
	for _, kw := range candidates {
		if matchKeyword(input, i, kw) {
			return kw
		}
	}
	return ""
}
