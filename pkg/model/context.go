package model

// SchemaVersion is the version of the Atlas schema this build encodes.
const SchemaVersion = "1.0.0"

// Context anchors a UI graph (states + transitions) to a specific
// application and runtime environment. Contexts are immutable by
// convention once stored; upserts replace them wholesale.
type Context struct {
	ContextID     string         `json:"context_id"`
	AppID         string         `json:"app_id"`
	Version       string         `json:"version"`
	Platform      Platform       `json:"platform"`
	Locale        string         `json:"locale"`
	SchemaVersion string         `json:"schema_version"`
	CreatedAt     string         `json:"created_at"`
	Environment   map[string]any `json:"environment"`
	Metadata      map[string]any `json:"metadata"`
}
