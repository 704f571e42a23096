package models

// GASResponse mirrors the JSON shape returned by the Apps Script backend.
// The proxy passes successful bodies through untouched; this struct is used
// when the proxy itself has to synthesize an error.
type GASResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Tag     string      `json:"tag,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SyncStatus records the outcome of the last sheets mirror run
type SyncStatus struct {
	State       string `json:"state"` // running, ok, failed
	StartedAt   string `json:"startedAt,omitempty"`
	FinishedAt  string `json:"finishedAt,omitempty"`
	RowsWritten int    `json:"rowsWritten"`
	Error       string `json:"error,omitempty"`
}
