package dae

import (
	"fmt"
	"os"

	"github.com/beevik/etree"

	"github.com/ginjaninja78/fbx-to-dae-automation/internal/logger"
	"github.com/ginjaninja78/fbx-to-dae-automation/internal/xmlwriter"
)

// Normalizer removes the converter's wrapper node from DAE files in place.
type Normalizer struct {
	options xmlwriter.WriteOptions
	logger  logger.Logger
}

// NewNormalizer creates a Normalizer that writes with indentSpaces spaces
// per nesting level.
func NewNormalizer(indentSpaces int, log logger.Logger) *Normalizer {
	if log == nil {
		log = logger.NewNop()
	}
	options := xmlwriter.DefaultWriteOptions()
	if indentSpaces > 0 {
		options.IndentSpaces = indentSpaces
	}
	return &Normalizer{options: options, logger: log}
}

// NormalizeFile flattens the visual scene of the DAE file at path.
//
// The file is left untouched when it cannot be parsed, when the visual scene
// cannot be located or when there is no wrapper to remove. Otherwise it is
// replaced atomically.
func (n *Normalizer) NormalizeFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return Result{}, &ParseError{Path: path, Err: err}
	}

	scene, err := Locate(doc)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}

	result := Flatten(scene)
	if !result.Normalized {
		n.logger.Debug("No wrapper node found", "file", path)
		return result, nil
	}

	if err := xmlwriter.WriteFile(doc, path, n.options); err != nil {
		return Result{}, err
	}

	n.logger.Debug("Removed wrapper node", "file", path, "moved", result.Moved)
	return result, nil
}
