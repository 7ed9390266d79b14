// Package descriptor loads the user-authored package/node descriptor into a
// generation context.
//
// Loading is strict: a field that the schema does not declare, or a value that
// cannot be decoded into its declared type, is a SchemaViolation that aborts
// the generation request. Override merging, in contrast, skips unknown keys
// with a warning.
package descriptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ros-acados/nodegen/internal/diag"
	"github.com/ros-acados/nodegen/internal/genctx"
)

// Format selects the document syntax of a descriptor.
type Format string

const (
	// FormatYAML decodes YAML documents.
	FormatYAML Format = "yaml"
	// FormatJSON decodes JSON documents.
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadFile reads and decodes the descriptor at path.
func LoadFile(path string) (genctx.RootContext, error) {
	if strings.TrimSpace(path) == "" {
		return genctx.RootContext{}, fmt.Errorf("descriptor path is empty")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return genctx.RootContext{}, fmt.Errorf("read descriptor %q: %w", path, err)
	}
	return Load(raw, FormatFromPath(path), path)
}

// Load decodes a descriptor document on top of the schema defaults and
// validates the result. source names the document in errors. An empty
// document yields the schema defaults.
func Load(raw []byte, format Format, source string) (genctx.RootContext, error) {
	withLines := true
	if format == FormatJSON {
		converted, err := jsonToYAML(raw)
		if err != nil {
			return genctx.RootContext{}, diag.Violation(source, fmt.Errorf("parse descriptor: %w", err))
		}
		raw = converted
		// Decoder line numbers would point into the converted document.
		withLines = false
	}

	root, err := decodeStrict(raw, source, withLines)
	if err != nil {
		return genctx.RootContext{}, err
	}
	if err := Validate(root); err != nil {
		return genctx.RootContext{}, err
	}
	return root, nil
}

// DecodeTree re-validates a plain nested mapping, typically a rendered tree
// after overrides were merged into it, through the same strict path as Load.
// Leaves keep their Go types on the way through, so a float stays a float and
// a number merged onto a string field is a SchemaViolation.
func DecodeTree(tree map[string]any) (genctx.RootContext, error) {
	raw, err := yaml.Marshal(genctx.TreeNode(tree))
	if err != nil {
		return genctx.RootContext{}, diag.Violation("", fmt.Errorf("encode merged tree: %w", err))
	}
	root, err := decodeStrict(raw, "merged tree", false)
	if err != nil {
		return genctx.RootContext{}, err
	}
	if err := Validate(root); err != nil {
		return genctx.RootContext{}, err
	}
	return root, nil
}

func decodeStrict(raw []byte, source string, withLines bool) (genctx.RootContext, error) {
	root := genctx.Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return genctx.Default(), nil
		}
		if !withLines {
			err = withoutLines(err)
		}
		return genctx.RootContext{}, violation(source, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return genctx.RootContext{}, violation(source, err)
	}
	if path, node := nonStringScalar(&doc, rootType, ""); node != nil {
		msg := fmt.Sprintf("expected a string, got %s %q", node.ShortTag(), node.Value)
		if withLines {
			msg = fmt.Sprintf("line %d: %s", node.Line, msg)
		}
		return genctx.RootContext{}, diag.Violation(path, fmt.Errorf("decode descriptor %q: %s", source, msg))
	}
	return root, nil
}

// jsonToYAML re-encodes a JSON document as YAML so that both formats share the
// strict decoder. Numbers keep their literal form: 1 stays an int, 1.0 a float.
func jsonToYAML(raw []byte) ([]byte, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(genctx.TreeNode(doc))
}

var (
	unknownFieldRe = regexp.MustCompile(`field (\S+) not found in type (\S+)`)
	linePrefixRe   = regexp.MustCompile(`^line \d+: `)
)

// withoutLines drops the line prefixes of a yaml type error.
func withoutLines(err error) error {
	var typeErr *yaml.TypeError
	if !errors.As(err, &typeErr) {
		return err
	}
	msgs := make([]string, len(typeErr.Errors))
	for i, msg := range typeErr.Errors {
		msgs[i] = linePrefixRe.ReplaceAllString(msg, "")
	}
	return &yaml.TypeError{Errors: msgs}
}

// violation converts a decoder error into a SchemaViolation naming the offending fields.
func violation(source string, err error) error {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		var fields []string
		for _, msg := range typeErr.Errors {
			if m := unknownFieldRe.FindStringSubmatch(msg); m != nil {
				fields = append(fields, m[1])
			}
		}
		if len(fields) > 0 {
			return diag.Violation(strings.Join(fields, ","), fmt.Errorf("decode descriptor %q: %w", source, err))
		}
	}
	return diag.Violation(source, fmt.Errorf("decode descriptor %q: %w", source, err))
}
