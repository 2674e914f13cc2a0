// Package cli is the cobra command tree of the terminal form client.
package cli

import (
	"github.com/Vero970/ProjFit/internal/form"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree around looker.
func NewRootCmd(looker form.Looker) *cobra.Command {
	root := &cobra.Command{
		Use:   "calorifit",
		Short: "Calorie intake form client",
		Long: `CaloriFit computes the calories of a food portion through the intake
function and records the result.

Run "calorifit form" for the interactive form or "calorifit lookup" for a
single calculation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newLookupCmd(looker))
	root.AddCommand(newFormCmd(looker))
	return root
}
