package serialization

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []Entry {
	return []Entry{
		{Name: "L1-0w0", Value: 0.25},
		{Name: "L1-0w1", Value: -1.5},
		{Name: "L1-0b", Value: math.Pi},
	}
}

// TestWriteRead_RoundTrip tests that values, names and metadata survive encoding.
func TestWriteRead_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	header := Header{
		ModelType: "MLP",
		CreatedAt: created,
		Metadata:  map[string]string{"sizes": "3,4,1"},
		CheckpointMeta: &CheckpointMeta{
			Epoch:         7,
			Step:          70,
			Loss:          0.125,
			OptimizerType: "SGD",
			LR:            0.05,
		},
	}

	require.NoError(t, Write(&buf, header, sampleEntries()))

	f, err := Read(&buf)
	require.NoError(t, err)

	assert.Equal(t, sampleEntries(), f.Entries)
	assert.Equal(t, FormatVersion, f.Header.FormatVersion)
	assert.Equal(t, "MLP", f.Header.ModelType)
	assert.True(t, created.Equal(f.Header.CreatedAt))
	assert.Equal(t, "3,4,1", f.Header.Metadata["sizes"])
	require.NotNil(t, f.Header.CheckpointMeta)
	assert.Equal(t, 7, f.Header.CheckpointMeta.Epoch)
	assert.Equal(t, "SGD", f.Header.CheckpointMeta.OptimizerType)

	v, ok := f.Lookup("L1-0w1")
	assert.True(t, ok)
	assert.Equal(t, -1.5, v)
	_, ok = f.Lookup("missing")
	assert.False(t, ok)
}

// TestWriteRead_Empty tests a file with no parameters.
func TestWriteRead_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Header{}, nil))

	f, err := Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, f.Entries)
	assert.False(t, f.Header.CreatedAt.IsZero())
}

// TestWriteFile_ReadFile tests the path helpers.
func TestWriteFile_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.mgrd")
	require.NoError(t, WriteFile(path, Header{ModelType: "MLP"}, sampleEntries()))

	f, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Entries, 3)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.mgrd"))
	assert.Error(t, err)
}

// TestRead_ChecksumMismatch tests corruption detection in the data section.
func TestRead_ChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Header{}, sampleEntries()))

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xFF

	_, err := Read(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

// TestRead_InvalidMagic tests rejection of foreign files.
func TestRead_InvalidMagic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Header{}, sampleEntries()))

	raw := buf.Bytes()
	copy(raw, "BORN")

	_, err := Read(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

// TestRead_UnsupportedVersion tests version gating.
func TestRead_UnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Header{}, sampleEntries()))

	raw := buf.Bytes()
	raw[4] = 9

	_, err := Read(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

// TestRead_Truncated tests a data section shorter than the header announces.
func TestRead_Truncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Header{}, sampleEntries()))

	raw := buf.Bytes()
	_, err := Read(bytes.NewReader(raw[:len(raw)-4]))
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = Read(bytes.NewReader(raw[:10]))
	assert.Error(t, err)
}

// TestWrite_RejectsBadNames tests name validation on write.
func TestWrite_RejectsBadNames(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, Header{}, []Entry{{Name: "w", Value: 1}, {Name: "w", Value: 2}})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "duplicate_name", vErr.Type)

	err = Write(&buf, Header{}, []Entry{{Name: "", Value: 1}})
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "invalid_name", vErr.Type)
}

// TestValidateName tests individual name rules.
func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("L2-3w17"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("bad\x00name"))
	assert.Error(t, ValidateName(string(bytes.Repeat([]byte("x"), MaxNameLen+1))))
}

// TestValidationError_Error tests error formatting.
func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Type: "duplicate_name", Name: "w", Details: "twice"}
	assert.Equal(t, `duplicate_name: parameter "w": twice`, err.Error())

	err = &ValidationError{Type: "invalid_name", Details: "empty name"}
	assert.Equal(t, "invalid_name: empty name", err.Error())
}
