package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danghamo/zoo/internal/app/query"
)

// Read-only commands. They are most useful with store.backend=redis, where
// cages outlive a single run.

var showCmd = &cobra.Command{
	Use:   "show <cage-number>",
	Short: "Describe every animal in a cage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid cage number %q: %w", args[0], err)
		}

		contents, err := zoo.Queries.Handle(commandContext(cmd), query.NewShowCageQuery(number))
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), contents)
		return err
	},
}

var cagesCmd = &cobra.Command{
	Use:   "cages",
	Short: "List cages as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries, err := zoo.Queries.Handle(commandContext(cmd), query.NewListCagesQuery())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	},
}
