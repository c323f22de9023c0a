package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsvar/parse"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		if err := viewFile(cfg, cc, file); err != nil {
			return err
		}
		if i < len(args)-1 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, cc *cli.Context, file string) error {
	st, err := cfg.store()
	if err != nil {
		return err
	}
	d, err := readFile(cc, file)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", file, err)
	}
	docs := splitDocs(d)
	for i, doc := range docs {
		v, err := parse.Parse(st, doc)
		if err != nil {
			return fmt.Errorf("error decoding %s document %d: %w", file, i, err)
		}
		err = cfg.writeValue(cc.Out, v)
		v.Release()
		if err != nil {
			return fmt.Errorf("error encoding %s document %d: %w", file, i, err)
		}
		if i < len(docs)-1 {
			if _, err := io.WriteString(cc.Out, "---\n"); err != nil {
				return fmt.Errorf("error writing document %d: %w", i, err)
			}
		}
	}
	return nil
}
