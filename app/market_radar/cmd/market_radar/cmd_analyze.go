package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

func init() {
	analyzeCmd.Flags().StringP("input", "i", "-", "JSON request file, - for stdin")
	analyzeCmd.Flags().StringP("output", "o", "", "write the analysis to this file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a full market analysis from a JSON request",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		raw, err := readRequest(cmd.InOrStdin(), input)
		if err != nil {
			return err
		}
		req, err := model.ParseAnalysisRequest(raw)
		if err != nil {
			return err
		}

		tk, err := loadToolkit(cmd.Context())
		if err != nil {
			return err
		}
		doc := tk.Engine.Analyze(cmd.Context(), req)

		if output == "" {
			return writeJSON(cmd.OutOrStdout(), doc)
		}
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := writeJSON(f, doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "análise salva em %s\n", output)
		return nil
	},
}

func readRequest(stdin io.Reader, path string) (map[string]any, error) {
	var r io.Reader = stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode request: %w", err)
	}
	return raw, nil
}
