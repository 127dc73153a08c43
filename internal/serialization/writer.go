package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// Write encodes entries with header into w.
//
// header.Names and header.FormatVersion are filled from entries; a zero
// CreatedAt is set to the current time.
func Write(w io.Writer, header Header, entries []Entry) error {
	header.FormatVersion = FormatVersion
	header.Names = make([]string, len(entries))
	for i, e := range entries {
		header.Names[i] = e.Name
	}
	if err := ValidateNames(header.Names); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	if header.CreatedAt.IsZero() {
		header.CreatedAt = time.Now().UTC()
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	data := encodeValues(entries)
	checksum := ComputeChecksum(data)

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(MagicBytes); err != nil {
		return fmt.Errorf("failed to write magic bytes: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(FormatVersion)); err != nil {
		return fmt.Errorf("failed to write version: %w", err)
	}
	if _, err := bw.Write(checksum[:]); err != nil {
		return fmt.Errorf("failed to write checksum: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := bw.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := bw.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	return bw.Flush()
}

// WriteFile creates path and writes entries into it.
func WriteFile(path string, header Header, entries []Entry) (err error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return Write(file, header, entries)
}
