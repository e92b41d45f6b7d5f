package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tdx-cli/tdx/internal/listing"
	"github.com/tdx-cli/tdx/internal/metadata"
	"github.com/tdx-cli/tdx/internal/query"
	"github.com/tdx-cli/tdx/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list [filters]",
	Aliases: []string{"ls", "l"},
	Short:   "List tasks, optionally filtered by metadata and search terms",
	RunE:    runList,
}

func init() {
	addStatusFlags(listCmd)
	listCmd.Flags().BoolP("case-sensitive", "C", false, "Match search terms case-sensitively")
}

func addStatusFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("todo", "t", false, "Include TODO tasks")
	cmd.Flags().BoolP("start", "s", false, "Include WIP tasks")
	cmd.Flags().BoolP("done", "d", false, "Include DONE tasks")
	cmd.Flags().BoolP("cancelled", "c", false, "Include CANCELLED tasks")
	cmd.Flags().BoolP("all", "a", false, "Include every task regardless of status")
}

func statusFlags(cmd *cobra.Command) query.StatusFlags {
	var f query.StatusFlags
	f.Todo, _ = cmd.Flags().GetBool("todo")
	f.Wip, _ = cmd.Flags().GetBool("start")
	f.Done, _ = cmd.Flags().GetBool("done")
	f.Cancelled, _ = cmd.Flags().GetBool("cancelled")
	f.All, _ = cmd.Flags().GetBool("all")
	return f
}

func runList(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	caseSensitive := rt.cfg.CaseSensitive
	if cmd.Flags().Lookup("case-sensitive") != nil {
		if flag, _ := cmd.Flags().GetBool("case-sensitive"); flag {
			caseSensitive = true
		}
	}

	tokens := metadata.Tokenize(args...)

	// Compilation failures abort the listing before any row is produced.
	filter, err := query.Compile(tokens, statusFlags(cmd), caseSensitive)
	if err != nil {
		return err
	}

	rows, err := listing.Build(rt.tasks.All(), filter, time.Now())
	if err != nil {
		return err
	}

	printFilterSummary(tokens, filter)

	renderer := ui.NewRenderer(&rt.cfg)
	fmt.Print(renderer.Table(rows))
	return nil
}

// printFilterSummary echoes the parsed filter back so users see what was
// understood, mirroring the add/edit feedback.
func printFilterSummary(tokens []metadata.Token, filter *query.Filter) {
	var parts []string
	for _, tok := range tokens {
		switch tok.Kind {
		case metadata.KindProject:
			parts = append(parts, "@"+tok.Value)
		case metadata.KindPriority:
			parts = append(parts, "+"+tok.Priority.String())
		case metadata.KindTag:
			parts = append(parts, "#"+tok.Value)
		}
	}
	if terms := filter.Terms(); len(terms) > 0 {
		parts = append(parts, "contains: "+strings.Join(terms, ", "))
	}
	if len(parts) > 0 {
		fmt.Printf("[ %s ]\n", strings.Join(parts, " "))
	}
}
