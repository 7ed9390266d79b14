package descriptor

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ros-acados/nodegen/internal/genctx"
)

var (
	rootType      = reflect.TypeFor[genctx.RootContext]()
	stringSetType = reflect.TypeFor[genctx.StringSet]()
	stringsType   = reflect.TypeFor[[]string]()
)

// nonStringScalar walks a document alongside the type it decodes into and
// returns the path and node of the first non-string scalar bound to a string
// field. yaml.v3 stores any scalar in a string field, so an unquoted 1.10 or
// 007 would otherwise pass as text.
func nonStringScalar(n *yaml.Node, t reflect.Type, path string) (string, *yaml.Node) {
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return "", nil
		}
		return nonStringScalar(n.Content[0], t, path)
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == stringSetType {
		t = stringsType
	}

	switch t.Kind() {
	case reflect.String:
		if n.Kind != yaml.ScalarNode {
			return "", nil
		}
		switch n.ShortTag() {
		case "!!str", "!!null":
			return "", nil
		}
		return path, n
	case reflect.Struct:
		if n.Kind != yaml.MappingNode {
			return "", nil
		}
		fields := yamlFields(t)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			ft, ok := fields[key]
			if !ok {
				continue
			}
			if p, bad := nonStringScalar(n.Content[i+1], ft, joinKey(path, key)); bad != nil {
				return p, bad
			}
		}
	case reflect.Slice:
		if n.Kind != yaml.SequenceNode {
			return "", nil
		}
		for i, item := range n.Content {
			if p, bad := nonStringScalar(item, t.Elem(), fmt.Sprintf("%s[%d]", path, i)); bad != nil {
				return p, bad
			}
		}
	}
	return "", nil
}

// yamlFields maps the yaml keys of struct t, including inlined structs, to their types.
func yamlFields(t reflect.Type) map[string]reflect.Type {
	out := make(map[string]reflect.Type, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			continue
		}
		if strings.Contains(opts, "inline") && f.Type.Kind() == reflect.Struct {
			for k, v := range yamlFields(f.Type) {
				out[k] = v
			}
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		out[name] = f.Type
	}
	return out
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
