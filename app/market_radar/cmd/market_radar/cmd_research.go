package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	researchCmd.Flags().String("segmento", "", "segment used as research context")
	rootCmd.AddCommand(researchCmd)
}

var researchCmd = &cobra.Command{
	Use:   "research <query>",
	Short: "Run a deep web search for a single query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		segmento, _ := cmd.Flags().GetString("segmento")

		tk, err := loadToolkit(cmd.Context())
		if err != nil {
			return err
		}
		result, err := tk.DeepSearch.PerformDeepSearch(cmd.Context(), query, map[string]any{"segmento": segmento})
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), result)
	},
}
