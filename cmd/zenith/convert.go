package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frasasu/zenith/pkgs/ast"
	"github.com/frasasu/zenith/pkgs/jsonast"
	"github.com/frasasu/zenith/pkgs/parser"
	"github.com/frasasu/zenith/pkgs/unparser"
)

var (
	convertFrom string
	convertTo   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert between Zenith source text and the JSON AST encoding",
	Args:  cobra.ExactArgs(2),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "zenith", "input format: zenith or json")
	convertCmd.Flags().StringVar(&convertTo, "to", "json", "output format: zenith or json")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inPath, outPath := args[0], args[1]

	data, err := os.ReadFile(inPath)
	if err != nil {
		return ioError(err)
	}

	roots, err := decodeAST(data, convertFrom)
	if err != nil {
		return parseError(err)
	}

	out, err := encodeAST(roots, convertTo)
	if err != nil {
		return runtimeError(err)
	}

	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return ioError(err)
	}
	return nil
}

func decodeAST(data []byte, format string) ([]ast.Node, error) {
	switch format {
	case "zenith", "":
		return parser.Parse(string(data), parser.DefaultLimits())
	case "json":
		return jsonast.Decode(data)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

func encodeAST(roots []ast.Node, format string) ([]byte, error) {
	switch format {
	case "json", "":
		return jsonast.Encode(roots)
	case "zenith":
		return []byte(unparser.Unparse(roots)), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
