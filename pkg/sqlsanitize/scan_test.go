package sqlsanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeScenarios(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		sanitized string
		summary   string
	}{
		{
			name:      "simple select",
			input:     "SELECT name FROM Customers",
			sanitized: "SELECT name FROM Customers",
			summary:   "SELECT Customers",
		},
		{
			name:      "select with comma-joined from and numeric literal",
			input:     "SELECT * FROM Orders o, OrderDetails od WHERE quantity > 25",
			sanitized: "SELECT * FROM Orders o, OrderDetails od WHERE quantity > ?",
			summary:   "SELECT Orders OrderDetails",
		},
		{
			name:      "insert into with string literal",
			input:     "INSERT INTO Logs (message) VALUES ('test')",
			sanitized: "INSERT INTO Logs (message) VALUES (?)",
			summary:   "INSERT INTO Logs",
		},
		{
			name:      "update with numeric literals",
			input:     "UPDATE Products SET price = 100 WHERE id = 1",
			sanitized: "UPDATE Products SET price = ? WHERE id = ?",
			summary:   "UPDATE Products",
		},
		{
			name:      "delete from with function call",
			input:     "DELETE FROM Cache WHERE expires < NOW()",
			sanitized: "DELETE FROM Cache WHERE expires < NOW()",
			summary:   "DELETE Cache",
		},
		{
			name:      "create table",
			input:     "CREATE TABLE foo (id INT)",
			sanitized: "CREATE TABLE foo (id INT)",
			summary:   "CREATE TABLE foo",
		},
		{
			name:      "hex, exponent and signed-dot literals plus elided comments",
			input:     "SELECT 0xFF, 1.5e-3, -.25 /* c */ -- tail\nFROM t",
			sanitized: "SELECT ?, ?, ?  \nFROM t",
			summary:   "SELECT t",
		},
		{
			name:      "doubled single quote inside a string literal",
			input:     "SELECT 'it''s' FROM t",
			sanitized: "SELECT ? FROM t",
			summary:   "SELECT t",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Sanitize(tc.input)
			assert.Equal(t, tc.sanitized, got.SanitizedSQL, "sanitized mismatch for %q", tc.input)
			assert.Equal(t, tc.summary, got.Summary, "summary mismatch for %q", tc.input)
		})
	}
}

func TestSanitizeEdgeCases(t *testing.T) {
	t.Run("unterminated string literal emits a single placeholder", func(t *testing.T) {
		got := Sanitize("SELECT 'unterminated")
		assert.Equal(t, "SELECT ?", got.SanitizedSQL)
	})

	t.Run("hanging 0x with no hex digits emits a single placeholder", func(t *testing.T) {
		got := Sanitize("SELECT 0x FROM t")
		assert.Equal(t, "SELECT ? FROM t", got.SanitizedSQL)
	})

	t.Run("word-bounded keyword: SELECTED is an identifier, not SELECT", func(t *testing.T) {
		got := Sanitize("SELECTED * FROM t")
		assert.NotEqual(t, "SELECT", got.Summary)
		assert.True(t, strings.HasPrefix(got.SanitizedSQL, "SELECTED"))
	})

	t.Run("bare minus and dot fall through verbatim", func(t *testing.T) {
		got := Sanitize("a - b . c")
		assert.Equal(t, "a - b . c", got.SanitizedSQL)
	})

	t.Run("empty input is total and yields an empty result", func(t *testing.T) {
		got := Sanitize("")
		assert.Equal(t, StatementInfo{}, got)
	})

	t.Run("unterminated block comment consumes to end of input", func(t *testing.T) {
		got := Sanitize("SELECT 1 /* never closed")
		assert.Equal(t, "SELECT ? ", got.SanitizedSQL)
	})

	t.Run("line comment at end of input with no trailing newline", func(t *testing.T) {
		got := Sanitize("SELECT 1 -- trailing")
		assert.Equal(t, "SELECT ? ", got.SanitizedSQL)
	})

	t.Run("DDL verb with no recognized target keyword still names the verb", func(t *testing.T) {
		got := Sanitize("ALTER SESSION SET x = 1")
		assert.Equal(t, "ALTER", got.Summary)
	})

	t.Run("join arms target capture the same way as from", func(t *testing.T) {
		got := Sanitize("SELECT a.x FROM a JOIN b ON a.id = b.id")
		assert.Equal(t, "SELECT a b", got.Summary)
	})
}

func TestSanitizeCaseInsensitiveKeywords(t *testing.T) {
	// Identifiers are held identical across both inputs; only the spelling
	// of the keywords themselves varies, so the two results must be equal
	// case-insensitively (spec.md's case-insensitivity invariant).
	mixed := Sanitize("select Name from Customers")
	upper := Sanitize("SELECT Name FROM Customers")
	assert.True(t, strings.EqualFold(mixed.SanitizedSQL, upper.SanitizedSQL))
	assert.True(t, strings.EqualFold(mixed.Summary, upper.Summary))
	assert.Equal(t, len(mixed.SanitizedSQL), len(upper.SanitizedSQL))
}

func TestSanitizeLiteralCountMatchesPlaceholderCount(t *testing.T) {
	got := Sanitize("SELECT * FROM t WHERE a = 1 AND b = 'x' AND c = 0xAB")
	assert.Equal(t, 3, strings.Count(got.SanitizedSQL, "?"))
}

func TestSanitizeIsPure(t *testing.T) {
	input := "SELECT * FROM accounts WHERE balance > 100.50"
	first := Sanitize(input)
	second := Sanitize(input)
	assert.Equal(t, first, second)
}
