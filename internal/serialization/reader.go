package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Read decodes a .mgrd stream, verifying magic, version and checksum.
func Read(r io.Reader) (*File, error) {
	fixed := make([]byte, FixedHeaderSize)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return nil, fmt.Errorf("failed to read fixed header: %w", err)
	}

	if string(fixed[0:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}

	version := binary.LittleEndian.Uint32(fixed[4:8])
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	var stored [32]byte
	copy(stored[:], fixed[8:8+ChecksumSize])

	headerSize := binary.LittleEndian.Uint64(fixed[8+ChecksumSize:])
	if headerSize > MaxHeaderSize {
		return nil, ErrHeaderTooLarge
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}
	if err := ValidateNames(header.Names); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	if len(data) != len(header.Names)*valueSize {
		return nil, fmt.Errorf("%w: %d bytes for %d parameters", ErrSizeMismatch, len(data), len(header.Names))
	}
	if err := ValidateChecksum(ComputeChecksum(data), stored); err != nil {
		return nil, err
	}

	values := decodeValues(data)
	entries := make([]Entry, len(values))
	for i, v := range values {
		entries[i] = Entry{Name: header.Names[i], Value: v}
	}

	return &File{Header: header, Entries: entries}, nil
}

// ReadFile opens path and decodes it.
func ReadFile(path string) (*File, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Read(file)
}
