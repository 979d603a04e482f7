package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/gidroatlas/gidroatlas/internal/assessment"
)

func newAssessCmd() *cobra.Command {
	var (
		reading assessment.Reading
		values  struct {
			ph, turbidity, oxygen, temperature, conductivity float64
		}
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess water quality from sensor readings",
		Long: `Runs the heuristic water quality assessor offline and prints the result
as JSON. Omitted readings use the assessor defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			bind := func(name string, v float64, dst **float64) {
				if flags.Changed(name) {
					*dst = &v
				}
			}
			bind("ph", values.ph, &reading.PH)
			bind("turbidity", values.turbidity, &reading.Turbidity)
			bind("dissolved-oxygen", values.oxygen, &reading.DissolvedOxygen)
			bind("temperature", values.temperature, &reading.Temperature)
			bind("conductivity", values.conductivity, &reading.Conductivity)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(assessment.Assess(reading))
		},
	}

	f := cmd.Flags()
	f.Float64Var(&values.ph, "ph", assessment.DefaultPH, "pH")
	f.Float64Var(&values.turbidity, "turbidity", assessment.DefaultTurbidity, "turbidity, NTU")
	f.Float64Var(&values.oxygen, "dissolved-oxygen", assessment.DefaultDissolvedOxygen, "dissolved oxygen, mg/L")
	f.Float64Var(&values.temperature, "temperature", assessment.DefaultTemperature, "temperature, C")
	f.Float64Var(&values.conductivity, "conductivity", assessment.DefaultConductivity, "conductivity, uS/cm")
	return cmd
}
