// Command zenith is the thin CLI driver described in spec.md section 6:
// it owns argument parsing, file I/O and output formatting, and calls
// straight into the core packages for everything else.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/frasasu/zenith/internal/zlog"
)

// Exit codes per spec.md section 6.
const (
	exitIOOrArgError         = 1
	exitParseError           = 2
	exitValidationError      = 3
	exitRuntimeAnalysisError = 4
)

var (
	jsonLogs bool
	debug    bool
	logger   *zlog.Logger
)

func main() {
	cobra.OnInitialize(func() {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		if jsonLogs {
			logger = zlog.NewJSON(os.Stderr, level)
		} else {
			logger = zlog.New(os.Stderr, level)
		}
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var code exitCoder
		if errors.As(err, &code) {
			os.Exit(code.ExitCode())
		}
		os.Exit(exitIOOrArgError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zenith",
	Short: "Parse, validate, simulate and analyze Zenith corpora",
	Long: `zenith is the command-line front-end for the Zenith corpus analyser.
It parses a textual corpus into a syntax tree, validates it, simulates each
law into a time-stamped event sequence, and computes temporal metrics and
recurring-pattern motifs over the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit structured JSON logs instead of compact text")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(unparseCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(compareCmd)
}

// exitCoder is implemented by errors that carry their own process exit
// code, so main can propagate the spec.md section 6 exit-code table
// without every subcommand calling os.Exit directly.
type exitCoder interface {
	error
	ExitCode() int
}

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string  { return e.err.Error() }
func (e *cliError) Unwrap() error  { return e.err }
func (e *cliError) ExitCode() int  { return e.code }

func ioError(err error) error         { return &cliError{code: exitIOOrArgError, err: err} }
func parseError(err error) error      { return &cliError{code: exitParseError, err: err} }
func validationError(err error) error { return &cliError{code: exitValidationError, err: err} }
func runtimeError(err error) error    { return &cliError{code: exitRuntimeAnalysisError, err: err} }

func readCorpusFile(path string) (string, error) {
	ext := fileExt(path)
	switch ext {
	case ".zenith", ".zth", ".znth":
	default:
		return "", fmt.Errorf("unsupported corpus file extension %q (want .zenith, .zth or .znth)", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func fileExt(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i:]
		}
		if path[i] == '/' {
			break
		}
	}
	return ""
}
