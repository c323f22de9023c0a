package libdiff

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type Colors struct {
	Delete func(string, ...any) string
	Insert func(string, ...any) string
	Equal  func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Delete: color.RedString,
		Insert: color.GreenString,
		Equal:  color.RGB(128, 128, 128).SprintfFunc(),
	}
}

// Write prints edits one per line, prefixed by their Op. colors may be nil.
func Write(w io.Writer, edits []Edit, colors *Colors) error {
	if colors == nil {
		colors = &Colors{Delete: fmt.Sprintf, Insert: fmt.Sprintf, Equal: fmt.Sprintf}
	}
	for i := range edits {
		e := &edits[i]
		var line string
		switch e.Op {
		case Equal:
			line = colors.Equal("%s [%d] %s", e.Op, e.FromIndex, e.From)
		case Delete:
			line = colors.Delete("%s [%d] %s", e.Op, e.FromIndex, e.From)
		case Insert:
			line = colors.Insert("%s [%d] %s", e.Op, e.ToIndex, e.To)
		case Replace:
			line = colors.Delete("- [%d] %s", e.FromIndex, e.From) + "\n" +
				colors.Insert("+ [%d] %s", e.ToIndex, e.To)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
