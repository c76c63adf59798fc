// cmd_schedule.go - Vorschau der Lernraten-Kurve
// Hauptfunktionen: newScheduleCmd, scheduleHandler
package cmd

import (
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/7blacky7/uebersetzer/train"
)

func scheduleHandler(cmd *cobra.Command, _ []string) error {
	dModel, _ := cmd.Flags().GetInt("d-model")
	warmup, _ := cmd.Flags().GetInt("warmup")
	steps, _ := cmd.Flags().GetInt("steps")

	if dModel <= 0 || warmup <= 0 || steps <= 0 {
		return fmt.Errorf("d-model, warmup and steps must be positive")
	}

	schedule := train.Transformer{DModel: dModel, WarmupSteps: warmup}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"STEP", "LEARNING RATE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")

	// Zehn gleichmaessig verteilte Stuetzstellen plus der Warmup-Punkt
	probes := make([]int, 0, 11)
	for i := 1; i <= 10; i++ {
		probes = append(probes, i*steps/10)
	}
	if warmup <= steps {
		probes = append(probes, warmup)
	}
	sort.Ints(probes)
	probes = slices.Compact(probes)

	for _, step := range probes {
		if step < 1 {
			continue
		}
		table.Append([]string{fmt.Sprint(step), fmt.Sprintf("%.6e", schedule.At(step))})
	}
	table.Render()

	return nil
}

// newScheduleCmd - Erstellt den schedule Command
func newScheduleCmd() *cobra.Command {
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Preview the warmup learning rate curve",
		Args:  cobra.ExactArgs(0),
		RunE:  scheduleHandler,
	}
	scheduleCmd.Flags().Int("d-model", 128, "Model dimensionality")
	scheduleCmd.Flags().Int("warmup", 4000, "Number of warmup steps")
	scheduleCmd.Flags().Int("steps", 20000, "Total number of steps to preview")
	return scheduleCmd
}
