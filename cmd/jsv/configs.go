package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/jsvar/array"
	"github.com/signadot/jsvar/encode"
	"github.com/signadot/jsvar/jsv"
	"github.com/signadot/jsvar/libdiff"
	"github.com/signadot/jsvar/script"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config desc='store configuration file (yaml or json)'"`
	Color      bool   `cli:"name=color desc='encode with color'"`
	WireOut    bool   `cli:"name=wire desc='output in compact format'"`
	JSONOut    bool   `cli:"name=json desc='output json, holes become null'"`
	Gops       bool   `cli:"name=gops desc='start a gops agent'"`

	Out      string
	CloseOut func() error

	st *jsv.Store

	Main *cli.Command
}

// store returns the value store, creating it from the -config file on
// first use.
func (cfg *MainConfig) store() (*jsv.Store, error) {
	if cfg.st != nil {
		return cfg.st, nil
	}
	c := jsv.DefaultConfig()
	if cfg.ConfigFile != "" {
		var err error
		c, err = jsv.LoadConfig(cfg.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	cfg.st = jsv.New(&jsv.Spec{Config: c})
	return cfg.st, nil
}

func (cfg *MainConfig) engine(st *jsv.Store) *array.Engine {
	return array.New(&array.Spec{
		Caller: script.NewCaller(st.Logger()),
		Log:    st.Logger(),
	})
}

// colorsSet reports whether -color was given explicitly, as opposed to
// being left to terminal detection.
func (cfg *MainConfig) colorsSet() bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" {
			return opt.Value != nil
		}
	}
	return false
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.colorsSet() || cfg.JSONOut {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeWire(cfg.WireOut),
		encode.EncodeJSON(cfg.JSONOut),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

func (cfg *MainConfig) diffColors(w io.Writer) *libdiff.Colors {
	if cfg.useColor(w) {
		return libdiff.NewColors()
	}
	return nil
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type CallConfig struct {
	*MainConfig

	// Args collects -a and -fn arguments in command line order.
	Args []argSrc
	NoThis bool `cli:"name=n desc='call without a receiver'"`

	Call *cli.Command
}

// argSrc is an unparsed method argument: a document, or a script
// function when params is non-nil.
type argSrc struct {
	src    string
	params []string
}

type SortConfig struct {
	*MainConfig
	Cmp string `cli:"name=cmp desc='comparator expression over a and b'"`

	Sort *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	PatchFile string `cli:"name=p desc='json patch file'"`

	Patch *cli.Command
}

type StatsConfig struct {
	*MainConfig

	Stats *cli.Command
}

type MethodsConfig struct {
	*MainConfig

	Methods *cli.Command
}
