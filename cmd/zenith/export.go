package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frasasu/zenith/internal/config"
	"github.com/frasasu/zenith/internal/pipeline"
	"github.com/frasasu/zenith/pkgs/jsonast"
	"github.com/frasasu/zenith/pkgs/parser"
)

var (
	exportFormats []string
	exportZip     bool
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Bundle the JSON AST and derived analysis artifacts",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringSliceVar(&exportFormats, "formats", []string{"ast", "metrics"}, "comma-separated artifacts to bundle: ast, metrics, events")
	exportCmd.Flags().BoolVar(&exportZip, "zip", false, "write a single .zip archive instead of loose files")
}

func runExport(cmd *cobra.Command, args []string) error {
	src, err := readCorpusFile(args[0])
	if err != nil {
		return ioError(err)
	}

	limits, err := config.Load()
	if err != nil {
		return ioError(err)
	}

	roots, err := parser.Parse(src, limits.ParserLimits())
	if err != nil {
		return parseError(err)
	}

	snap, err := pipeline.Run(src, limits, []int{0}, logger)
	if err != nil {
		if snap.Stage == pipeline.StageValidated {
			return validationError(err)
		}
		return runtimeError(err)
	}

	artifacts := make(map[string][]byte)
	for _, kind := range exportFormats {
		switch strings.TrimSpace(kind) {
		case "ast":
			data, err := jsonast.Encode(roots)
			if err != nil {
				return runtimeError(err)
			}
			artifacts["ast.json"] = data
		case "metrics":
			agg := snap.PerPopulation[0]
			data, err := jsonMarshalIndent(agg.Metrics)
			if err != nil {
				return runtimeError(err)
			}
			artifacts["metrics.json"] = data
		case "events":
			agg := snap.PerPopulation[0]
			data, err := jsonMarshalIndent(eventsToJSON(agg.Events))
			if err != nil {
				return runtimeError(err)
			}
			artifacts["events.json"] = data
		case "":
		default:
			return ioError(fmt.Errorf("unknown export format %q", kind))
		}
	}

	base := strings.TrimSuffix(args[0], fileExt(args[0]))
	if exportZip {
		return writeZip(base+".zip", artifacts)
	}
	for name, data := range artifacts {
		if err := os.WriteFile(base+"-"+name, data, 0o644); err != nil {
			return ioError(err)
		}
	}
	return nil
}

func jsonMarshalIndent(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func writeZip(path string, artifacts map[string][]byte) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range artifacts {
		w, err := zw.Create(name)
		if err != nil {
			return runtimeError(err)
		}
		if _, err := w.Write(data); err != nil {
			return runtimeError(err)
		}
	}
	if err := zw.Close(); err != nil {
		return runtimeError(err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
