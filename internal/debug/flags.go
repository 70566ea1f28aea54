// Package debug centralizes the compile-time debug flags used across the
// analysis core. Keeping them in one place means there's one answer to
// "where do we have debug logging or validation" instead of a flag per file.
package debug

// ----- Debug logging -----
// These must be false by default. Flip locally only while debugging.

const (
	TraversalLoggingEnabled  = false
	FixedPointLoggingEnabled = false
	LoopDetectionLogging     = false
)

// ----- Validations -----
// These should stay enabled until the core has seen enough real-world
// traffic to trust it without them.

const (
	CFGValidationEnabled  = true
	LoopValidationEnabled = true
)
