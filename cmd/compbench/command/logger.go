package command

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// newLogger writes human-readable logs to the command's stderr at the level
// chosen with --log-level. Color is used only on terminals.
func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	name, err := cmd.Flags().GetString("log-level")
	if err != nil {
		name = "info"
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}
	out := cmd.ErrOrStderr()
	noColor := true
	if f, ok := out.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: noColor}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
