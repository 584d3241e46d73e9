// Package main provides the CLI entry point for xlgrid-go.
package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/models"
	"github.com/ukaji3/xlgrid-go/pkg/xlgrid/output"
)

const stdinPath = "-"

var (
	configPath string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("command failed", "category", xlgrid.Category(err), "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xlgrid",
		Short: "Read and write xlsx files as grids of strings",
		Long: `xlgrid-go reads worksheets of xlsx files into rows of strings and writes
rows of strings back as xlsx worksheets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				cfg, err := loadConfig(configPath)
				if err != nil {
					return err
				}
				if err := applyConfig(cmd.Flags(), cfg.values(cmd.Name())); err != nil {
					return err
				}
			}
			setupLogging(cmd.ErrOrStderr(), verbose)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file with default flag values")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug messages to stderr")

	rootCmd.AddCommand(newReadCmd(), newWriteCmd(), newSheetsCmd(), newDemoCmd())
	return rootCmd
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

type readOptions struct {
	outputPath string
	sheet      string
	all        bool
	format     string
	pretty     bool
}

func newReadCmd() *cobra.Command {
	opts := &readOptions{}
	cmd := &cobra.Command{
		Use:   "read [input.xlsx]",
		Short: "Print the rows of a worksheet",
		Long: `Print the rows of a worksheet. Use "-" to read the document from stdin.
Without --sheet the first worksheet is read.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRead(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "Sheet name (default: first sheet)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Read every sheet")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format: json, csv, table, aligned")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func runRead(cmd *cobra.Command, inputPath string, opts *readOptions) error {
	switch opts.format {
	case "json", "csv", "table", "aligned":
	default:
		return fmt.Errorf("invalid format: %s (must be json, csv, table, or aligned)", opts.format)
	}
	if opts.all && opts.format == "csv" {
		return fmt.Errorf("csv output holds a single sheet; drop --all or pick --sheet")
	}

	sheets, err := readSheets(cmd.InOrStdin(), inputPath, opts)
	if err != nil {
		if xlgrid.Category(err) == "SheetNotFound" {
			slog.Warn("sheet not found", "path", inputPath, "sheet", opts.sheet)
		}
		return err
	}
	slog.Debug("loaded file", "path", inputPath, "sheets", len(sheets))

	var buf bytes.Buffer
	if err := render(&buf, sheets, opts); err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if opts.outputPath != "" {
		if err := os.WriteFile(opts.outputPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

// readSheets loads the requested sheets from a file or, for "-", from stdin.
func readSheets(stdin io.Reader, inputPath string, opts *readOptions) ([]models.Sheet, error) {
	if inputPath == stdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, xlgrid.NewCodecError(xlgrid.OpRead, "stdin", opts.sheet, err)
		}
		r := bytes.NewReader(data)
		if opts.all {
			return xlgrid.ReadAllFrom(r, int64(len(data)), "stdin")
		}
		grid, err := xlgrid.ReadSheetFrom(r, int64(len(data)), "stdin", opts.sheet)
		if err != nil {
			return nil, err
		}
		return []models.Sheet{{Name: opts.sheet, Rows: grid}}, nil
	}

	if opts.all {
		return xlgrid.ReadAll(inputPath)
	}
	grid, err := xlgrid.ReadSheet(inputPath, opts.sheet)
	if err != nil {
		return nil, err
	}
	return []models.Sheet{{Name: opts.sheet, Rows: grid}}, nil
}

func render(w io.Writer, sheets []models.Sheet, opts *readOptions) error {
	switch opts.format {
	case "json":
		var data []byte
		var err error
		if opts.all {
			data, err = output.SheetsToJSON(sheets, opts.pretty)
		} else {
			data, err = output.ToJSON(sheets[0].Rows, opts.pretty)
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "csv":
		return output.ToCSV(w, sheets[0].Rows)
	}

	for i, sheet := range sheets {
		if opts.all {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", sheet.Name)
		}
		var err error
		if opts.format == "aligned" {
			err = output.ToAlignedTable(w, sheet.Rows)
		} else {
			err = output.ToTable(w, sheet.Rows)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func newWriteCmd() *cobra.Command {
	var verify bool
	cmd := &cobra.Command{
		Use:   "write [output.xlsx] [NAME=input.csv]...",
		Short: "Write CSV files as worksheets of a new xlsx file",
		Long: `Write each CSV input as one worksheet, in argument order. An argument
without NAME= uses the file name without extension as the sheet name.
Use "-" as input to read CSV from stdin.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, args[0], args[1:], verify)
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "Re-read the staged file before replacing the destination")
	return cmd
}

func runWrite(cmd *cobra.Command, outputPath string, inputs []string, verify bool) error {
	sheets := make([]models.Sheet, 0, len(inputs))
	for _, arg := range inputs {
		name, inputPath := parseSheetArg(arg)
		grid, err := readCSV(cmd.InOrStdin(), inputPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", inputPath, err)
		}
		slog.Debug("loaded file", "path", inputPath, "sheet", name, "rows", len(grid))
		sheets = append(sheets, models.Sheet{Name: name, Rows: grid})
	}

	opts := xlgrid.DefaultWriteOptions()
	opts.Verify = verify
	if err := xlgrid.WriteSheets(outputPath, sheets, opts); err != nil {
		slog.Error("write failed", "path", outputPath, "category", xlgrid.Category(err))
		return err
	}
	slog.Info("wrote file", "path", outputPath, "sheets", len(sheets))
	return nil
}

// parseSheetArg splits "NAME=PATH". Without a name the file stem is used.
func parseSheetArg(arg string) (name, inputPath string) {
	if n, p, ok := strings.Cut(arg, "="); ok && n != "" {
		return n, p
	}
	if arg == stdinPath {
		return "Sheet1", arg
	}
	base := filepath.Base(arg)
	return strings.TrimSuffix(base, filepath.Ext(base)), arg
}

func readCSV(stdin io.Reader, inputPath string) (models.Grid, error) {
	if inputPath == stdinPath {
		return output.FromCSV(stdin)
	}
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return output.FromCSV(f)
}

func newSheetsCmd() *cobra.Command {
	var (
		format string
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List the worksheets of an xlsx file with their used ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := xlgrid.Inspect(args[0])
			if err != nil {
				return err
			}
			slog.Debug("loaded file", "path", args[0], "sheets", len(infos))

			w := cmd.OutOrStdout()
			switch format {
			case "json":
				data, err := output.SheetInfosToJSON(infos, pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				_, err = fmt.Fprintln(w, string(data))
				return err
			case "table", "aligned":
				return output.ToAlignedTable(w, sheetInfoGrid(infos))
			default:
				return fmt.Errorf("invalid format: %s (must be json or table)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: json, table")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func sheetInfoGrid(infos []models.SheetInfo) models.Grid {
	grid := models.Grid{{"#", "NAME", "DIMENSION", "ROWS", "COLUMNS", "NON-EMPTY", "RANGE", "PRINT AREA"}}
	for _, info := range infos {
		grid = append(grid, []string{
			fmt.Sprint(info.Index + 1),
			info.Name,
			info.Dimension,
			fmt.Sprint(info.Stats.Rows),
			fmt.Sprint(info.Stats.Columns),
			fmt.Sprint(info.Stats.NonEmpty),
			info.Stats.Range,
			strings.Join(info.PrintAreas, ","),
		})
	}
	return grid
}
