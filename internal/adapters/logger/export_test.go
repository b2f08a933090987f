package logger

// Error chain rendering internals, exported for white-box tests.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
