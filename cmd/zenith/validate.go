package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frasasu/zenith/internal/config"
	"github.com/frasasu/zenith/pkgs/corpus"
	"github.com/frasasu/zenith/pkgs/parser"
)

var validateStrict bool

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Parse and validate a corpus without simulating it",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat validation warnings as errors")
}

func runValidate(cmd *cobra.Command, args []string) error {
	src, err := readCorpusFile(args[0])
	if err != nil {
		return ioError(err)
	}

	limits, err := config.Load()
	if err != nil {
		return ioError(err)
	}
	limits.StrictValidation = validateStrict

	roots, err := parser.Parse(src, limits.ParserLimits())
	if err != nil {
		return parseError(err)
	}

	built := corpus.Build(roots)
	for _, d := range built.Diagnostics {
		fmt.Println(d.String())
	}

	if corpus.HasErrors(built.Diagnostics, validateStrict) {
		return validationError(fmt.Errorf("%d diagnostic(s) failed validation", len(built.Diagnostics)))
	}

	if logger != nil {
		logger.Info("validation passed", "laws", len(built.Corpus.ByLawName), "targets", len(built.Corpus.ByTargetName), "warnings", len(built.Diagnostics))
	}
	return nil
}
