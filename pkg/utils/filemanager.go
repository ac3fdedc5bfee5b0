// =============================================================================
// FBX to DAE Automation - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the pipeline:
//   - Directory management
//   - Input file discovery (non-recursive)
//   - Atomic write-replace of output files
//
// DISCOVERY:
//   Only the immediate entries of the input directory are considered.
//   Entries that cannot be inspected (permission denied, dangling links)
//   are skipped instead of aborting the scan.
//
// ATOMIC WRITES:
//   Files are written to a temporary sibling and renamed over the target,
//   so a failed write never leaves a truncated file behind.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the pipeline.
type FileManager struct {
	// InputDir is the directory scanned for input files.
	InputDir string

	// OutputDir is the directory converted files are written to.
	OutputDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir string) *FileManager {
	return &FileManager{
		InputDir:  inputDir,
		OutputDir: outputDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
//
// RETURNS:
//   - An error if any directory cannot be created.
func (fm *FileManager) EnsureDirectories() error {
	dirs := []string{
		fm.InputDir,
		fm.OutputDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the regular files directly inside the input
// directory for which match returns true. Results are in name order.
//
// PARAMETERS:
//   - match: Called with the entry's base name. A nil match accepts all.
//
// RETURNS:
//   - A slice of file paths.
//   - An error if the input directory itself cannot be read.
func (fm *FileManager) DiscoverInputFiles(match func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(fm.InputDir)
	if err != nil && len(entries) == 0 {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if match != nil && !match(entry.Name()) {
			continue
		}

		path := filepath.Join(fm.InputDir, entry.Name())
		if !IsRegularFile(path) {
			continue
		}

		files = append(files, path)
	}

	return files, nil
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// WriteFileAtomic replaces the file at path with data. The data is written
// to a temporary file in the same directory, synced and renamed over path.
// The target keeps its permissions when it already exists.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := writeAll(tmp, data); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil && runtime.GOOS != "windows" {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsRegularFile reports whether path resolves to a regular file. Any error
// while inspecting the path counts as false.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
