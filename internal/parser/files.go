package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/fwbo-viewer/fwbo/internal/result"
)

// DiagramSuffix is appended to a model path to find its companion diagram document.
const DiagramSuffix = ".diagram"

// Documents is the raw text of one document pair.
type Documents struct {
	ModelPath   string
	DiagramPath string
	Model       string
	Diagram     string
}

// ReadDocuments reads the model document and its diagram document. When
// diagramPath is empty, modelPath+".diagram" is used if it exists; a missing
// default diagram is not an error.
func ReadDocuments(modelPath, diagramPath string) (*Documents, error) {
	modelBytes, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	docs := &Documents{ModelPath: modelPath, Model: string(modelBytes)}

	explicit := diagramPath != ""
	if !explicit {
		diagramPath = modelPath + DiagramSuffix
	}
	diagramBytes, err := os.ReadFile(diagramPath)
	switch {
	case err == nil:
		docs.DiagramPath = diagramPath
		docs.Diagram = string(diagramBytes)
	case !explicit && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read diagram: %w", err)
	}
	return docs, nil
}

// ParseDocuments is Parse over a Documents value.
func (p *ModelParser) ParseDocuments(docs *Documents) (*result.ParseResult, error) {
	return p.Parse(docs.Model, docs.Diagram)
}
