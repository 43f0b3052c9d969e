package ir

// Version constants recorded with every journaled run.
const (
	// TraceVersion is the trace snapshot format version.
	TraceVersion = "1"

	// ToolVersion is the seqkit version.
	ToolVersion = "0.1.0"
)
