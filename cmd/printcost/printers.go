// ABOUTME: Printers command for the printcost CLI
// ABOUTME: Lists the built-in printer profile catalog

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bibekdka/3dd/models"
)

var printersCmd = &cobra.Command{
	Use:   "printers",
	Short: "List available printer profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		runPrinters(os.Stdout)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(printersCmd)
}

func runPrinters(w io.Writer) {
	profiles := models.PrinterProfiles()

	if jsonOutput {
		data, _ := json.MarshalIndent(profiles, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Printer profiles") + "\n")
	for _, p := range profiles {
		marker := " "
		if p.Name == models.DefaultPrinterName {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("  %s %-12s  %3.0f mm/s  %.1f mm nozzle  %.0f×%.0f×%.0f mm\n",
			marker, p.Name, p.MaxSpeedMmPerSec, p.NozzleDiameterMm,
			p.MaxBuildVolumeMm[0], p.MaxBuildVolumeMm[1], p.MaxBuildVolumeMm[2]))
	}
	sb.WriteString(valueStyle.Render("  * default") + "\n")
	fmt.Fprint(w, sb.String())
}
