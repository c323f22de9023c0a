package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsvar/encode"
	"github.com/signadot/jsvar/jsv"
	"github.com/signadot/jsvar/parse"
)

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" && path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

// getDocFile parses the document in path, or stdin for "-" and "".
func getDocFile(cc *cli.Context, st *jsv.Store, path string) (jsv.Value, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return jsv.Value{}, err
	}
	return parse.Parse(st, d)
}

// splitDocs splits a stream on yaml document separators.
func splitDocs(d []byte) [][]byte {
	return bytes.Split(d, []byte("\n---\n"))
}

func (cfg *MainConfig) writeValue(w io.Writer, v jsv.Value) error {
	if v.IsNone() {
		return nil
	}
	return encode.Encode(v, w, cfg.encOpts(w)...)
}
