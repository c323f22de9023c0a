package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsvar/patch"
)

func patchDoc(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.PatchFile == "" {
		return fmt.Errorf("%w: patch requires -p", cli.ErrUsage)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: patch takes at most one file, got %v", cli.ErrUsage, args)
	}
	file := "-"
	if len(args) == 1 {
		file = args[0]
	}
	d, err := os.ReadFile(cfg.PatchFile)
	if err != nil {
		return err
	}
	st, err := cfg.store()
	if err != nil {
		return err
	}
	doc, err := getDocFile(cc, st, file)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	defer doc.Release()
	res, err := patch.Apply(doc, d)
	if err != nil {
		return fmt.Errorf("error patching %s with %s: %w", file, cfg.PatchFile, err)
	}
	defer res.Release()
	return cfg.writeValue(cc.Out, res)
}
