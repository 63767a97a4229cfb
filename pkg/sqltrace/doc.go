// Package sqltrace wires the sqlsanitize engine into database/sql
// instrumentation. Opening a database through Open gets OpenTelemetry
// spans named after the sanitized statement's summary and a db.statement
// attribute holding sanitized SQL text, never the raw query.
package sqltrace
