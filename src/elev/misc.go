package elev

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"singlevator/src/types"
)

// InitLogger sets the default slog logger with compact time and file:line source.
// When logFile is set, output is written to both stdout and the file.
func InitLogger(level string, logFile string) (io.Closer, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	var out io.Writer = os.Stdout
	var closer io.Closer = io.NopCloser(nil)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					file := source.File
					if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
						file = file[lastSlash+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
				}
			}
			return a
		},
	})

	slog.SetDefault(slog.New(handler))
	return closer, nil
}

func FormatCommand(cmd types.Command) string {
	switch cmd.Kind {
	case types.CmdPressButton, types.CmdStartMoving:
		return fmt.Sprintf("%s(%d)", cmd.Kind, cmd.Floor)
	case types.CmdTick:
		return fmt.Sprintf("%s(%g)", cmd.Kind, cmd.Delta)
	case types.CmdEnter, types.CmdExit:
		return fmt.Sprintf("%s(%d)", cmd.Kind, cmd.Weight)
	}
	return cmd.Kind.String()
}
