package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Vero970/ProjFit/internal/form"

	"github.com/spf13/cobra"
)

func newLookupCmd(looker form.Looker) *cobra.Command {
	var (
		food   string
		grams  float64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Calculate and record one intake",
		Example: `  calorifit lookup --food banana --grams 150
  calorifit lookup -f "arroz branco" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			outcome := form.Submit(cmd.Context(), looker, form.Submission{Food: food, Grams: grams})
			if !outcome.Success() {
				return errors.New(outcome.Error)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(outcome.Result, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal result: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			r := outcome.Result
			fmt.Fprintf(out, "Alimento:          %s\n", r.Alimento)
			fmt.Fprintf(out, "Quantidade:        %sg\n", form.FormatGrams(r.QuantidadeG))
			fmt.Fprintf(out, "Calorias / 100g:   %.2f kcal\n", r.CaloriasPor100g)
			fmt.Fprintf(out, "Registrado em:     %s\n", r.Timestamp)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s: %s\n", outcome.MetricLabel, outcome.MetricValue)
			return nil
		},
	}

	cmd.Flags().StringVarP(&food, "food", "f", "", "food name, as sent to the food database")
	cmd.Flags().Float64VarP(&grams, "grams", "g", form.DefaultGrams, "quantity in grams")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}
