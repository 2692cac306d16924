// Package archive writes ZIP-structured containers (plain ZIP, JAR, APK) with reproducible bytes.
//
// Entries are stored uncompressed, in the given order, with zeroed timestamps: the same ordered entry list always
// yields the same archive, and changing one entry only touches that entry's local record and directory line.
package archive

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/farcloser/primordium/fault"
	"github.com/klauspost/compress/zip"

	"github.com/farcloser/doppel/internal/types"
)

const (
	classPadding     = 100
	dexPadding       = 200
	resourcesPadding = 150
)

// Encode builds a ZIP from ordered entries. Two entries with the same name fail with ErrDuplicateEntry.
func Encode(entries []types.Entry) ([]byte, error) {
	seen := make(map[string]struct{}, len(entries))

	var out bytes.Buffer

	writer := zip.NewWriter(&out)

	for _, entry := range entries {
		if entry.Name == "" {
			return nil, fmt.Errorf("%w: unnamed archive entry", types.ErrUnsupportedContent)
		}

		if _, ok := seen[entry.Name]; ok {
			return nil, fmt.Errorf("%w: %q", types.ErrDuplicateEntry, entry.Name)
		}

		seen[entry.Name] = struct{}{}

		member, err := writer.CreateHeader(&zip.FileHeader{Name: entry.Name, Method: zip.Store})
		if err != nil {
			return nil, fmt.Errorf("creating entry %q: %w", entry.Name, err)
		}

		if _, err = member.Write(entry.Bytes()); err != nil {
			return nil, fmt.Errorf("writing entry %q: %w", entry.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}

	slog.Debug("archive.Encode", "entries", len(entries), "bytes", out.Len())

	return out.Bytes(), nil
}

// Entries returns the entries a container spec resolves to: the explicit list when present, else the kind preset.
// With Marker set, a single 0x01 byte is appended to the primary entry (the last explicit entry, or the preset's
// binary payload).
func Entries(spec types.ContainerSpec) ([]types.Entry, error) {
	if !spec.Kind.IsArchive() {
		return nil, fmt.Errorf("%w: %q is not an archive container", types.ErrUnsupportedContent, spec.Kind)
	}

	entries := make([]types.Entry, len(spec.Entries))
	primary := len(entries) - 1

	for i, entry := range spec.Entries {
		entries[i] = types.Entry{Name: entry.Name, Data: bytes.Clone(entry.Bytes())}
	}

	if len(entries) == 0 {
		entries, primary = preset(spec.Kind)
	}

	if spec.Marker {
		entries[primary].Data = append(entries[primary].Data, 0x01)
	}

	return entries, nil
}

// preset returns the default entries for an archive kind, and the index of its primary payload.
func preset(kind types.ContainerKind) ([]types.Entry, int) {
	switch kind {
	case types.ContainerJAR:
		return []types.Entry{
			{Name: "META-INF/MANIFEST.MF", Data: []byte("Manifest-Version: 1.0\nMain-Class: Test\n")},
			{Name: "Test.class", Data: padded([]byte{0xca, 0xfe, 0xba, 0xbe}, classPadding)},
		}, 1
	case types.ContainerAPK:
		return []types.Entry{
			{Name: "AndroidManifest.xml", Data: []byte(`<?xml version="1.0"?><manifest package="com.test"/>`)},
			{Name: "classes.dex", Data: padded([]byte("dex"), dexPadding)},
			{Name: "resources.arsc", Data: padded([]byte{0x02, 0x00}, resourcesPadding)},
		}, 1
	default:
		return []types.Entry{
			{Name: "file1.txt", Data: []byte("This is a test file")},
			{Name: "file2.txt", Data: []byte("Another test file")},
		}, 1
	}
}

func padded(magic []byte, zeros int) []byte {
	out := make([]byte, len(magic)+zeros)
	copy(out, magic)

	return out
}

// Read decodes every entry of an archive, in directory order.
func Read(data []byte) ([]types.Entry, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	entries := make([]types.Entry, 0, len(reader.File))

	for _, file := range reader.File {
		content, err := readMember(file)
		if err != nil {
			return nil, err
		}

		entries = append(entries, types.Entry{Name: file.Name, Data: content})
	}

	return entries, nil
}

func readMember(file *zip.File) ([]byte, error) {
	member, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", fault.ErrReadFailure, file.Name, err)
	}
	defer member.Close()

	content, err := io.ReadAll(member)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", fault.ErrReadFailure, file.Name, err)
	}

	return content, nil
}
