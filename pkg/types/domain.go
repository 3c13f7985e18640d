package types

// Model describes one artifact found in the models directory.
type Model struct {
	// Canonical city name (artifact file name without the suffix).
	// example: Delhi
	City string `json:"city" example:"Delhi"`
	// Artifact file name.
	// example: Delhi_AutoARIMA.pkl
	File string `json:"file" example:"Delhi_AutoARIMA.pkl"`
	// Absolute path on the server.
	Path string `json:"-"`
	// Artifact size in bytes.
	// example: 2048
	SizeBytes int64 `json:"size_bytes" example:"2048"`
	// Last modification time (unix seconds).
	// example: 1700000000
	ModifiedUnix int64 `json:"modified_unix" example:"1700000000"`
}
