// Package parse loads JSON and YAML documents into a value store.
package parse

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/signadot/jsvar/debug"
	"github.com/signadot/jsvar/jsv"
)

// Parse decodes a JSON or YAML document into a new value in st. Mapping
// keys keep their document order.
func Parse(st *jsv.Store, data []byte) (jsv.Value, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return jsv.Value{}, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if debug.Parse() {
		debug.Logf("parse: decoded %T\n", doc)
	}
	return jsv.FromAny(st, plain(doc))
}

// plain converts ordered mappings to key-value lists.
func plain(x any) any {
	switch y := x.(type) {
	case yaml.MapSlice:
		kvs := make([]jsv.KeyVal, len(y))
		for i, item := range y {
			kvs[i] = jsv.KeyVal{Key: keyString(item.Key), Val: plain(item.Value)}
		}
		return kvs
	case []any:
		res := make([]any, len(y))
		for i, el := range y {
			res[i] = plain(el)
		}
		return res
	}
	return x
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	if k == nil {
		return "null"
	}
	return fmt.Sprint(k)
}
