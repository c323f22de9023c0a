package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/jsvar/array"
	"github.com/signadot/jsvar/jsv"
)

// stats loads a document and reports arena usage with the document held
// and after it is released.
func stats(cfg *StatsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Stats.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: stats takes at most one file, got %v", cli.ErrUsage, args)
	}
	file := "-"
	if len(args) == 1 {
		file = args[0]
	}
	st, err := cfg.store()
	if err != nil {
		return err
	}
	doc, err := getDocFile(cc, st, file)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	held := st.Stats()
	doc.Release()
	after := st.Stats()
	rep, err := jsv.FromAny(st, []jsv.KeyVal{
		{Key: "held", Val: statsFields(held)},
		{Key: "released", Val: statsFields(after)},
	})
	if err != nil {
		return err
	}
	defer rep.Release()
	return cfg.writeValue(cc.Out, rep)
}

func statsFields(s jsv.Stats) []jsv.KeyVal {
	return []jsv.KeyVal{
		{Key: "capacity", Val: s.Capacity},
		{Key: "used", Val: s.Used},
		{Key: "nodes", Val: s.Nodes},
		{Key: "free", Val: s.Free},
	}
}

func methods(cfg *MethodsConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Methods.Parse(cc, args); err != nil {
		return err
	}
	for _, m := range array.Methods() {
		if _, err := fmt.Fprintln(cc.Out, m); err != nil {
			return err
		}
	}
	return nil
}
