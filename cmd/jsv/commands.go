package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "jsv").
		WithSynopsis("jsv [opts] command [opts]").
		WithDescription("jsv runs array operations on documents held in a bounded value store.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsvMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			CallCommand(cfg),
			SortCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			StatsCommand(cfg),
			MethodsCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view documents as script literals, holes included").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func CallCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CallConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "a",
			Description: "document argument, in json or yaml",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.argOpt), "(doc)"),
		},
		&cli.Opt{
			Name:        "fn",
			Description: "script function argument",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.fnOpt), "(params => expr)"),
		})
	return cli.NewCommandAt(&cfg.Call, "call").
		WithAliases("c").
		WithSynopsis("call [-n] [-a doc | -fn 'x, i => expr']... <method> [file]").
		WithDescription("call an array method on a document, printing the result and then the receiver").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return call(cfg, cc, args)
		})
}

func (cfg *CallConfig) argOpt(_ *cli.Context, a string) (any, error) {
	cfg.Args = append(cfg.Args, argSrc{src: a})
	return a, nil
}

// fnOpt parses "a, b => expr". The arrow is optional for functions
// without parameters.
func (cfg *CallConfig) fnOpt(_ *cli.Context, a string) (any, error) {
	ps, src, ok := strings.Cut(a, "=>")
	if !ok {
		cfg.Args = append(cfg.Args, argSrc{src: a, params: []string{}})
		return a, nil
	}
	params := []string{}
	for _, p := range strings.Split(ps, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		params = append(params, p)
	}
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: empty function body in %q", cli.ErrUsage, a)
	}
	cfg.Args = append(cfg.Args, argSrc{src: src, params: params})
	return a, nil
}

func SortCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SortConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Sort, "sort").
		WithAliases("s").
		WithSynopsis("sort [-cmp expr] [file]").
		WithDescription("sort an array document in place; interrupt to stop early").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return sortDoc(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff a b").
		WithDescription("diff two array documents element by element").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p", "pa").
		WithSynopsis("patch -p patch.json [file]").
		WithDescription("apply a json patch to a document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patchDoc(cfg, cc, args)
		})
}

func StatsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &StatsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Stats, "stats").
		WithSynopsis("stats [file]").
		WithDescription("show store usage after loading a document").
		WithRun(func(cc *cli.Context, args []string) error {
			return stats(cfg, cc, args)
		})
}

func MethodsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MethodsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Methods, "methods").
		WithAliases("m").
		WithSynopsis("methods").
		WithDescription("list the array methods available to call").
		WithRun(func(cc *cli.Context, args []string) error {
			return methods(cfg, cc, args)
		})
}
