package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsvar/libdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	if cfg.Reverse {
		args[0], args[1] = args[1], args[0]
	}
	st, err := cfg.store()
	if err != nil {
		return err
	}
	from, err := getDocFile(cc, st, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	defer from.Release()
	to, err := getDocFile(cc, st, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	defer to.Release()
	if !from.IsArray() || !to.IsArray() {
		return fmt.Errorf("%w: diff compares arrays, got %s and %s", cli.ErrUsage, from.Kind(), to.Kind())
	}
	edits := libdiff.DiffArrays(from, to)
	if !libdiff.Changed(edits) {
		return nil
	}
	if err := libdiff.Write(cc.Out, edits, cfg.diffColors(cc.Out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
