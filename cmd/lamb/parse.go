package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lamb/internal/diagfmt"
	"lamb/internal/driver"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] file.lc",
		Short: "Print the syntax tree of a source file",
		Long: `Parse prints the lossless syntax tree (--format tree) or the extracted
surface AST as JSON (--format ast). Syntax errors never stop the parse.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	cmd.Flags().String("format", "tree", "output format (tree|ast)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "tree" && format != "ast" {
		return fmt.Errorf("unknown format: %s", format)
	}
	maxDiag, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	res, err := driver.Parse(cmd.Context(), args[0], maxDiag)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if err := printDiagnostics(cmd, cmd.ErrOrStderr(), res.Bag, res.FileSet, "pretty"); err != nil {
		return err
	}

	if format == "tree" {
		err = diagfmt.FormatTree(cmd.OutOrStdout(), res.Tree)
	} else {
		err = diagfmt.FormatAST(cmd.OutOrStdout(), res.Module)
	}
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
