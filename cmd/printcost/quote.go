// ABOUTME: Quote command for the printcost CLI
// ABOUTME: Prices a job from material cost and print time without STL files

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

var (
	quoteMaterialCost float64
	quoteHours        float64
	quoteMargin       float64
	quoteTax          float64
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a job from material cost and print time",
	Long: `Price a job directly from a known material cost and print time,
using the configured rate card. Useful for re-quoting a previous
analysis with different margins.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exitCode := runQuote(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func init() {
	quoteCmd.Flags().Float64Var(&quoteMaterialCost, "material-cost", 0, "Material cost for the job")
	quoteCmd.Flags().Float64Var(&quoteHours, "hours", 0, "Print time in hours")
	quoteCmd.Flags().Float64Var(&quoteMargin, "margin", -1, "Profit margin fraction override (e.g. 0.3)")
	quoteCmd.Flags().Float64Var(&quoteTax, "tax", -1, "Tax fraction override (e.g. 0.18)")
	quoteCmd.MarkFlagRequired("material-cost")
	quoteCmd.MarkFlagRequired("hours")
	rootCmd.AddCommand(quoteCmd)
}

func runQuote(w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
		return 2
	}
	if quoteMaterialCost < 0 || quoteHours < 0 {
		fmt.Fprintln(w, errorStyle.Render("Error: material cost and hours must be non-negative"))
		return 2
	}

	rates := models.RateCard{
		MachineRatePerHour:     cfg.MachineRatePerHour,
		ElectricityRatePerHour: cfg.ElectricityRatePerHour,
		LabourRatePerHour:      cfg.LabourRatePerHour,
		ProfitMarginFraction:   cfg.ProfitMarginFraction,
		TaxFraction:            cfg.TaxFraction,
	}
	if quoteMargin >= 0 {
		rates.ProfitMarginFraction = quoteMargin
	}
	if quoteTax >= 0 {
		rates.TaxFraction = quoteTax
	}

	breakdown := models.Quote(quoteMaterialCost, quoteHours, rates)

	if jsonOutput {
		data, _ := json.MarshalIndent(breakdown, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatQuoteHuman(breakdown))
	}
	return 0
}

func formatQuoteHuman(q models.QuoteBreakdown) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Quote") + "\n")
	sb.WriteString(kv("  Material", fmt.Sprintf("%.2f", q.MaterialCost)) + "\n")
	sb.WriteString(kv("  Machine", fmt.Sprintf("%.2f", q.MachineCost)) + "\n")
	sb.WriteString(kv("  Electricity", fmt.Sprintf("%.2f", q.ElectricityCost)) + "\n")
	sb.WriteString(kv("  Labour", fmt.Sprintf("%.2f", q.LabourCost)) + "\n")
	sb.WriteString(kv("  Base cost", fmt.Sprintf("%.2f", q.BaseCost)) + "\n")
	sb.WriteString(kv("  Profit", fmt.Sprintf("%.2f", q.Profit)) + "\n")
	sb.WriteString(kv("  Subtotal", fmt.Sprintf("%.2f", q.Subtotal)) + "\n")
	sb.WriteString(kv("  Tax", fmt.Sprintf("%.2f", q.Tax)) + "\n")
	sb.WriteString(labelStyle.Render("  Final price") + totalStyle.Render(fmt.Sprintf("%.2f", q.FinalPrice)))
	return sb.String()
}
