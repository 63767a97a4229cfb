// Package sqlsanitize implements a single-pass SQL statement sanitizer and
// summarizer for tracing and telemetry pipelines. Sanitize replaces every
// literal value in a raw SQL statement with a placeholder and strips
// comments, while Cache memoizes that work for a bounded set of distinct,
// recurring statements.
package sqlsanitize
