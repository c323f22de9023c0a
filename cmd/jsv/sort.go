package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsvar/jsv"
	"github.com/signadot/jsvar/script"
)

func sortDoc(cfg *SortConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Sort.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: sort takes at most one file, got %v", cli.ErrUsage, args)
	}
	file := "-"
	if len(args) == 1 {
		file = args[0]
	}
	st, err := cfg.store()
	if err != nil {
		return err
	}
	arr, err := getDocFile(cc, st, file)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	defer arr.Release()
	var cmp jsv.Value
	if cfg.Cmp != "" {
		cmp, err = script.Compile(st, []string{"a", "b"}, cfg.Cmp)
		if err != nil {
			return fmt.Errorf("%w: -cmp: %w", cli.ErrUsage, err)
		}
		defer cmp.Release()
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := cfg.engine(st).Sort(ctx, arr, cmp)
	defer res.Release()
	if errors.Is(err, jsv.ErrInterrupted) {
		// the array is a permutation of its input; show how far it got.
		if werr := cfg.writeValue(cc.Out, arr); werr != nil {
			return werr
		}
		return err
	}
	if err != nil {
		return err
	}
	return cfg.writeValue(cc.Out, res)
}
