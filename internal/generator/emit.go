package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ros-acados/nodegen/internal/descriptor"
	"github.com/ros-acados/nodegen/internal/genctx"
)

// WriterEmitter serializes the finished tree to a writer, for template
// engines that read the context from a file or a pipe.
type WriterEmitter struct {
	w      io.Writer
	format descriptor.Format
}

// NewWriterEmitter returns an emitter writing YAML or JSON to w.
func NewWriterEmitter(w io.Writer, format descriptor.Format) *WriterEmitter {
	return &WriterEmitter{w: w, format: format}
}

// Emit writes tree to the underlying writer.
func (e *WriterEmitter) Emit(_ context.Context, tree map[string]any) error {
	data, err := Encode(tree, e.format)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("write context: %w", err)
	}
	return nil
}

// FileEmitter writes the tree to a file, creating parent directories.
type FileEmitter struct {
	path   string
	format descriptor.Format
}

// NewFileEmitter returns an emitter writing to path. An empty format is
// derived from the file extension.
func NewFileEmitter(path string, format descriptor.Format) *FileEmitter {
	if format == "" {
		format = descriptor.FormatFromPath(path)
	}
	return &FileEmitter{path: path, format: format}
}

// Emit writes tree to the file.
func (e *FileEmitter) Emit(_ context.Context, tree map[string]any) error {
	data, err := Encode(tree, e.format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(e.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(e.path, data, 0o644); err != nil {
		return fmt.Errorf("write context to %q: %w", e.path, err)
	}
	return nil
}

// Encode serializes tree as YAML (two-space indent) or indented JSON. YAML
// output keeps floats with integral values recognisable as floats.
func Encode(tree map[string]any, format descriptor.Format) ([]byte, error) {
	switch format {
	case descriptor.FormatJSON:
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode context as json: %w", err)
		}
		return append(data, '\n'), nil
	case descriptor.FormatYAML, "":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(genctx.TreeNode(tree)); err != nil {
			return nil, fmt.Errorf("encode context as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode context as yaml: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}
