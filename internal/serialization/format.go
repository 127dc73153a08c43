package serialization

import "time"

// Format constants.
const (
	MagicBytes      = "MGRD"
	FormatVersion   = 1
	ChecksumSize    = 32 // SHA-256 checksum size (32 bytes)
	FixedHeaderSize = 4 + 4 + ChecksumSize + 8
	MaxHeaderSize   = 64 * 1024 * 1024 // Upper bound on the JSON header
	MaxEntries      = 16 * 1024 * 1024 // Upper bound on parameter count
	MaxNameLen      = 256              // Upper bound on a parameter name
	valueSize       = 8                // float64
)

// Header represents the JSON header in a .mgrd file.
type Header struct {
	FormatVersion  int               `json:"format_version"`       // Version of the .mgrd format
	ID             string            `json:"id,omitempty"`         // Unique identifier of the saved run
	ModelType      string            `json:"model_type"`           // Type of model (e.g., "MLP")
	CreatedAt      time.Time         `json:"created_at"`           // When the file was created
	Names          []string          `json:"names"`                // Parameter names, in data order
	Metadata       map[string]string `json:"metadata"`             // Custom metadata
	CheckpointMeta *CheckpointMeta   `json:"checkpoint,omitempty"` // Checkpoint metadata (optional)
}

// CheckpointMeta contains training state information for checkpoints.
type CheckpointMeta struct {
	Epoch         int     `json:"epoch"`          // Training epoch number
	Step          int64   `json:"step"`           // Training step number
	Loss          float64 `json:"loss"`           // Loss value at checkpoint
	OptimizerType string  `json:"optimizer_type"` // Optimizer type ("SGD", "Adam", etc.)
	LR            float64 `json:"lr"`             // Learning rate at checkpoint
}

// Entry is one named scalar parameter.
type Entry struct {
	Name  string
	Value float64
}

// File is a decoded .mgrd file.
type File struct {
	Header  Header
	Entries []Entry
}

// Lookup returns the value stored under name.
func (f *File) Lookup(name string) (float64, bool) {
	for _, e := range f.Entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return 0, false
}
