package nn

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/micrograd/internal/engine"
	"github.com/born-ml/micrograd/internal/serialization"
)

// OptimizerInfo is the part of an optimizer recorded in a checkpoint.
//
// Declared here to avoid an import cycle with the optim package.
type OptimizerInfo interface {
	GetLR() float64
}

// Checkpoint represents a training state snapshot: parameter values plus
// training metadata.
//
// Example:
//
//	ckpt := &nn.Checkpoint{Model: model, Optimizer: sgd, Epoch: 100, Loss: 0.01}
//	if err := ckpt.Save("mlp.mgrd"); err != nil {
//	    log.Fatal(err)
//	}
//
//	restored, err := nn.LoadCheckpoint("mlp.mgrd", model)
type Checkpoint struct {
	ID        string            // Run identifier (default: a new random UUID on Save)
	Model     Module            // The network whose parameters are saved
	Optimizer OptimizerInfo     // Optional, recorded for reference only
	Epoch     int               // Training epoch number
	Step      int64             // Training step number
	Loss      float64           // Loss value at this checkpoint
	Metadata  map[string]string // Additional training metadata
	CreatedAt time.Time         // When the checkpoint was created
}

// StateDict returns the parameters of m as named entries.
//
// Parameter labels are used as names; unlabeled parameters are named
// "param.<index>".
func StateDict(m Module) []serialization.Entry {
	params := m.Parameters()
	entries := make([]serialization.Entry, len(params))
	for i, p := range params {
		entries[i] = serialization.Entry{Name: paramName(p, i), Value: p.Data()}
	}
	return entries
}

// LoadStateDict copies entries into the parameters of m by name and resets
// their gradients. Every parameter must be present.
func LoadStateDict(m Module, entries []serialization.Entry) error {
	byName := make(map[string]float64, len(entries))
	for _, e := range entries {
		byName[e.Name] = e.Value
	}

	params := m.Parameters()
	if len(params) != len(entries) {
		return fmt.Errorf("state dict: %w: %d entries, %d parameters", ErrArity, len(entries), len(params))
	}

	for i, p := range params {
		name := paramName(p, i)
		v, ok := byName[name]
		if !ok {
			return fmt.Errorf("state dict: missing parameter %q", name)
		}
		p.SetData(v)
		p.ZeroGrad()
	}
	return nil
}

// Save writes the checkpoint to path in .mgrd format.
func (c *Checkpoint) Save(path string) error {
	meta := &serialization.CheckpointMeta{
		Epoch:         c.Epoch,
		Step:          c.Step,
		Loss:          c.Loss,
		OptimizerType: optimizerType(c.Optimizer),
	}
	if c.Optimizer != nil {
		meta.LR = c.Optimizer.GetLR()
	}

	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}

	header := serialization.Header{
		ID:             id,
		ModelType:      modelType(c.Model),
		CreatedAt:      createdAt,
		Metadata:       c.Metadata,
		CheckpointMeta: meta,
	}

	if err := serialization.WriteFile(path, header, StateDict(c.Model)); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint reads path and restores its parameters into model.
//
// The model must have the same architecture (and therefore the same
// parameter labels) as the one that was saved.
func LoadCheckpoint(path string, model Module) (*Checkpoint, error) {
	f, err := serialization.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read checkpoint: %w", err)
	}

	if err := LoadStateDict(model, f.Entries); err != nil {
		return nil, err
	}

	ckpt := &Checkpoint{
		ID:        f.Header.ID,
		Model:     model,
		Metadata:  f.Header.Metadata,
		CreatedAt: f.Header.CreatedAt,
	}
	if meta := f.Header.CheckpointMeta; meta != nil {
		ckpt.Epoch = meta.Epoch
		ckpt.Step = meta.Step
		ckpt.Loss = meta.Loss
	}
	return ckpt, nil
}

func paramName(p *engine.Value, index int) string {
	if p.Label() != "" {
		return p.Label()
	}
	return fmt.Sprintf("param.%d", index)
}

func modelType(m Module) string {
	switch m.(type) {
	case *MLP:
		return "MLP"
	case *Layer:
		return "Layer"
	case *Neuron:
		return "Neuron"
	default:
		return fmt.Sprintf("%T", m)
	}
}

func optimizerType(o OptimizerInfo) string {
	if o == nil {
		return ""
	}
	// Strip the package and pointer from names such as "*optim.SGD".
	name := fmt.Sprintf("%T", o)
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i+1:]
		}
	}
	return name
}
