package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/waribank/pkg/config"
	"github.com/amirasaad/waribank/pkg/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

func logStyles() *log.Styles {
	// Define color styles for different log levels
	styles := log.DefaultStyles()
	infoTxtColor := lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	successTxtColor := lipgloss.AdaptiveColor{Light: "#02A35A", Dark: "#3CE38B"}
	warnTxtColor := lipgloss.AdaptiveColor{Light: "#E0A100", Dark: "#F5C542"}
	errorTxtColor := lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}
	debugTxtColor := lipgloss.AdaptiveColor{Light: "#00A3B4", Dark: "#4FD6E3"}

	levelStyle := func(name string, c lipgloss.AdaptiveColor) lipgloss.Style {
		return lipgloss.NewStyle().
			SetString(name).
			Bold(true).
			MaxWidth(7).
			Foreground(c)
	}
	styles.Levels[log.DebugLevel] = levelStyle("DEBUG", debugTxtColor)
	styles.Levels[log.InfoLevel] = levelStyle("INFO", infoTxtColor)
	styles.Levels[log.Level(logging.LevelSuccess)] = levelStyle("SUCCESS", successTxtColor)
	styles.Levels[log.WarnLevel] = levelStyle("WARNING", warnTxtColor)
	styles.Levels[log.ErrorLevel] = levelStyle("ERROR", errorTxtColor)

	styles.Keys["error"] = lipgloss.NewStyle().Foreground(errorTxtColor)
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	styles.Keys["event"] = lipgloss.NewStyle().Foreground(successTxtColor)
	styles.Values["event"] = lipgloss.NewStyle().Bold(true)
	styles.Keys["account"] = lipgloss.NewStyle().Foreground(infoTxtColor)
	styles.Keys["reference"] = lipgloss.NewStyle().Foreground(infoTxtColor)
	styles.Prefix = lipgloss.NewStyle().Foreground(debugTxtColor).Bold(true)
	return styles
}

var formatters = map[string]log.Formatter{
	"json":   log.JSONFormatter,
	"logfmt": log.LogfmtFormatter,
	"text":   log.TextFormatter,
}

func newCharmLogger(w io.Writer, cfg *config.Log, color bool) *log.Logger {
	formatter := log.TextFormatter
	if f, ok := formatters[cfg.Format]; ok {
		formatter = f
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(logStyles())
	if !color {
		logger.SetColorProfile(termenv.Ascii)
	}
	return logger
}

// setupLogger builds the application logger: records below WARN go to
// stdout, the rest to stderr, and every record is appended to the log
// file when one is configured. The returned closer releases the file.
func setupLogger(cfg *config.Log, stdout, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	color := cfg.Color
	if f, ok := stdout.(*os.File); ok {
		color = logging.ColorEnabled(f, cfg.Color)
	}

	var copies []slog.Handler
	var closer io.Closer = io.NopCloser(nil)
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		copies = append(copies, newCharmLogger(f, cfg, false))
		closer = f
	}

	logger := slog.New(logging.NewRouter(
		newCharmLogger(stdout, cfg, color),
		newCharmLogger(stderr, cfg, color),
		copies...,
	))
	slog.SetDefault(logger)
	return logger, closer, nil
}
