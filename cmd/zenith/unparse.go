package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/frasasu/zenith/pkgs/jsonast"
	"github.com/frasasu/zenith/pkgs/unparser"
)

var unparseCmd = &cobra.Command{
	Use:   "unparse <ast.json>",
	Short: "Render a JSON AST file back to canonical Zenith source text",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnparse,
}

func runUnparse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return ioError(err)
	}

	roots, err := jsonast.Decode(data)
	if err != nil {
		return parseError(err)
	}

	fmt.Print(unparser.Unparse(roots))
	return nil
}
