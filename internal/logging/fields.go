// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"

	// Configuration fields.
	FieldMode       = "mode"
	FieldLinkColor  = "link_color"
	FieldCacheSize  = "cache_size"
	FieldConfigFile = "config_file"

	// Markup fields.
	FieldKind      = "kind"
	FieldIndex     = "index"
	FieldCount     = "count"
	FieldParam     = "param"
	FieldTrack     = "track"
	FieldStart     = "start"
	FieldEnd       = "end"
	FieldStreamLen = "stream_len"
	FieldExpected  = "expected"
	FieldLinks     = "links"
	FieldImages    = "images"

	// Resource fields.
	FieldResource = "resource"
	FieldEvicted  = "evicted"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
