// Package patch applies RFC 6902 JSON patches to stored values.
package patch

import (
	"bytes"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/signadot/jsvar/debug"
	"github.com/signadot/jsvar/encode"
	"github.com/signadot/jsvar/jsv"
	"github.com/signadot/jsvar/parse"
)

// Apply returns a new value in v's store holding the result of applying
// the JSON patch document d to v. v itself is not changed.
//
// The patch operates on the JSON form of v, in which holes, undefined and
// functions are null.
func Apply(v jsv.Value, d []byte) (jsv.Value, error) {
	ops, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return jsv.Value{}, fmt.Errorf("decoding patch: %w", err)
	}
	return ApplyPatch(v, ops)
}

// ApplyPatch is Apply for a decoded patch.
func ApplyPatch(v jsv.Value, ops jsonpatch.Patch) (jsv.Value, error) {
	st := v.Store()
	if st == nil {
		return jsv.Value{}, fmt.Errorf("%w: patch target has no value", jsv.ErrTypeArgument)
	}
	buf := &bytes.Buffer{}
	if err := encode.Encode(v, buf, encode.EncodeJSON(true)); err != nil {
		return jsv.Value{}, err
	}
	if debug.Parse() {
		debug.Logf("patch: %d ops on %s", len(ops), buf.String())
	}
	out, err := ops.Apply(buf.Bytes())
	if err != nil {
		return jsv.Value{}, fmt.Errorf("applying patch: %w", err)
	}
	return parse.Parse(st, out)
}
