package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsvar/array"
	"github.com/signadot/jsvar/jsv"
	"github.com/signadot/jsvar/parse"
	"github.com/signadot/jsvar/script"
)

func call(cfg *CallConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Call.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: call requires a method name and at most one file, got %v", cli.ErrUsage, args)
	}
	file := "-"
	if len(args) == 2 {
		file = args[1]
	}
	m := array.Lookup(args[0])
	if m == nil {
		return fmt.Errorf("%w: no method %q, see 'jsv methods'", cli.ErrUsage, args[0])
	}
	st, err := cfg.store()
	if err != nil {
		return err
	}
	var this jsv.Value
	if !cfg.NoThis {
		this, err = getDocFile(cc, st, file)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", file, err)
		}
		defer this.Release()
	}
	vals, err := cfg.argValues(st)
	defer func() {
		for i := range vals {
			vals[i].Release()
		}
	}()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := m.Call(ctx, cfg.engine(st), this, vals)
	defer res.Release()
	if err != nil {
		return fmt.Errorf("%s: %w", m, err)
	}
	if err := cfg.writeValue(cc.Out, res); err != nil {
		return err
	}
	// the receiver may have changed.
	return cfg.writeValue(cc.Out, this)
}

// argValues builds the method arguments in command line order.
func (cfg *CallConfig) argValues(st *jsv.Store) ([]jsv.Value, error) {
	res := make([]jsv.Value, 0, len(cfg.Args))
	for i, a := range cfg.Args {
		var (
			v   jsv.Value
			err error
		)
		if a.params == nil {
			v, err = parse.Parse(st, []byte(a.src))
		} else {
			v, err = script.Compile(st, a.params, a.src)
		}
		if err != nil {
			return res, fmt.Errorf("%w: argument %d: %w", cli.ErrUsage, i, err)
		}
		res = append(res, v)
	}
	return res, nil
}
