// ABOUTME: Analyze command for the printcost CLI
// ABOUTME: Estimates weight, time, and cost for STL files and prices the batch

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Bibekdka/3dd/models"
	"github.com/Bibekdka/3dd/services"
)

var (
	analyzeDensity     float64
	analyzeCostPerKg   float64
	analyzeInfill      float64
	analyzeWall        float64
	analyzePrinter     string
	analyzeLayerHeight float64
	analyzeQuantity    int
	analyzeInteractive bool
	analyzeAdvise      bool
	analyzeNoHistory   bool
	analyzeReportPath  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze STL files and quote the batch",
	Long: `Analyze one or more STL files: compute raw and effective volume,
material weight, print time, and cost, then price the whole batch.

With --interactive, slicer settings are collected through a form instead
of flags.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAnalyze(ctx, os.Stdout, args)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeDensity, "density", 0, "Material density in g/cm³ (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeCostPerKg, "cost-per-kg", 0, "Filament cost per kg (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeInfill, "infill", -1, "Infill percentage 0-100 (default from config)")
	analyzeCmd.Flags().Float64Var(&analyzeWall, "wall", -1, "Wall/shell percentage 0-100 (default from config)")
	analyzeCmd.Flags().StringVar(&analyzePrinter, "printer", "", "Printer profile name (see 'printcost printers')")
	analyzeCmd.Flags().Float64Var(&analyzeLayerHeight, "layer-height", 0, "Layer height in mm (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeQuantity, "quantity", 1, "Copies of each file")
	analyzeCmd.Flags().BoolVarP(&analyzeInteractive, "interactive", "i", false, "Collect slicer settings through a form")
	analyzeCmd.Flags().BoolVar(&analyzeAdvise, "advise", false, "Run AI advisory over the batch summary")
	analyzeCmd.Flags().BoolVar(&analyzeNoHistory, "no-history", false, "Skip writing the batch to the history ledger")
	analyzeCmd.Flags().StringVar(&analyzeReportPath, "report", "", "Write a PDF report to the given path")
	rootCmd.AddCommand(analyzeCmd)
}

// runAnalyze executes the analysis flow and returns an exit code.
func runAnalyze(ctx context.Context, w io.Writer, paths []string) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
		return 2
	}

	opts := services.AnalyzeOptions{
		DensityGramsPerCm3: cfg.DefaultDensity,
		CostPerKg:          cfg.DefaultCostPerKg,
		Slicer: models.SlicerParameters{
			InfillPercent: cfg.DefaultInfillPercent,
			WallPercent:   cfg.DefaultWallPercent,
		},
		LayerHeightMm: cfg.DefaultLayerHeightMm,
	}
	if analyzeDensity > 0 {
		opts.DensityGramsPerCm3 = analyzeDensity
	}
	if analyzeCostPerKg > 0 {
		opts.CostPerKg = analyzeCostPerKg
	}
	if analyzeInfill >= 0 {
		opts.Slicer.InfillPercent = analyzeInfill
	}
	if analyzeWall >= 0 {
		opts.Slicer.WallPercent = analyzeWall
	}
	if analyzeLayerHeight > 0 {
		opts.LayerHeightMm = analyzeLayerHeight
	}

	printerName := analyzePrinter
	if analyzeInteractive {
		if err := analyzeForm(&opts, &printerName); err != nil {
			fmt.Fprintln(w, errorStyle.Render("Cancelled: "+err.Error()))
			return 1
		}
	}

	printer, err := models.LookupPrinter(printerName)
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
		return 2
	}
	opts.Printer = printer

	if err := services.ValidateAnalyzeOptions(opts); err != nil {
		fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
		return 2
	}

	analyzer := services.NewAnalyzer(services.NewSTLLoader())
	outcomes := analyzer.AnalyzeBatch(ctx, paths, opts)

	quantities := make(map[string]int, len(outcomes))
	for _, o := range outcomes {
		quantities[o.FileName] = analyzeQuantity
	}
	items := services.SucceededItems(outcomes, quantities)
	totals := models.AggregateBatch(items)
	quote := models.Quote(totals.TotalCost, totals.TotalPrintTimeHours, models.RateCard{
		MachineRatePerHour:     cfg.MachineRatePerHour,
		ElectricityRatePerHour: cfg.ElectricityRatePerHour,
		LabourRatePerHour:      cfg.LabourRatePerHour,
		ProfitMarginFraction:   cfg.ProfitMarginFraction,
		TaxFraction:            cfg.TaxFraction,
	})

	var advice *models.Advice
	if analyzeAdvise {
		a := services.NewAdvisor(cfg).Advise(ctx, services.BatchPrompt(outcomes, totals))
		advice = &a
	}

	if !analyzeNoHistory && len(items) > 0 {
		ledger := services.NewHistoryLedger(cfg.HistoryFile)
		details := fmt.Sprintf("%d files, %.1f g, %.2f h", totals.ItemCount, totals.TotalWeightGrams, totals.TotalPrintTimeHours)
		if err := ledger.Append(models.EntryBatchAnalysis, fmt.Sprintf("Batch of %d", len(paths)), details, quote.FinalPrice); err != nil {
			slog.Warn("History append failed", "error", err)
		}
	}

	if analyzeReportPath != "" {
		if err := writeReport(analyzeReportPath, outcomes, totals, quote); err != nil {
			fmt.Fprintln(w, errorStyle.Render("Report failed: "+err.Error()))
			return 2
		}
		fmt.Fprintln(w, kv("Report", analyzeReportPath))
	}

	if jsonOutput {
		fmt.Fprintln(w, formatAnalyzeJSON(outcomes, totals, quote, advice))
	} else {
		fmt.Fprintln(w, formatAnalyzeHuman(outcomes, totals, quote, advice))
	}

	for _, o := range outcomes {
		if o.Failed() {
			return 1
		}
	}
	return 0
}

// analyzeForm collects slicer settings interactively.
func analyzeForm(opts *services.AnalyzeOptions, printerName *string) error {
	density := strconv.FormatFloat(opts.DensityGramsPerCm3, 'f', -1, 64)
	costPerKg := strconv.FormatFloat(opts.CostPerKg, 'f', -1, 64)
	infill := strconv.FormatFloat(opts.Slicer.InfillPercent, 'f', -1, 64)
	wall := strconv.FormatFloat(opts.Slicer.WallPercent, 'f', -1, 64)

	printerOptions := make([]huh.Option[string], 0, len(models.PrinterProfiles()))
	for _, p := range models.PrinterProfiles() {
		printerOptions = append(printerOptions, huh.NewOption(p.Name, p.Name))
	}
	if *printerName == "" {
		*printerName = models.DefaultPrinterName
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Material density (g/cm³)").
				Value(&density).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Filament cost per kg").
				Value(&costPerKg).
				Validate(validatePositiveFloat),
			huh.NewInput().
				Title("Infill percentage (0-100)").
				Value(&infill).
				Validate(validatePercentInput),
			huh.NewInput().
				Title("Wall percentage (0-100)").
				Value(&wall).
				Validate(validatePercentInput),
			huh.NewSelect[string]().
				Title("Printer profile").
				Options(printerOptions...).
				Value(printerName),
		),
	).WithTheme(formTheme())

	if err := form.Run(); err != nil {
		return err
	}

	opts.DensityGramsPerCm3, _ = strconv.ParseFloat(density, 64)
	opts.CostPerKg, _ = strconv.ParseFloat(costPerKg, 64)
	opts.Slicer.InfillPercent, _ = strconv.ParseFloat(infill, 64)
	opts.Slicer.WallPercent, _ = strconv.ParseFloat(wall, 64)
	return nil
}

func validatePositiveFloat(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if f <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func validatePercentInput(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if f < 0 || f > 100 {
		return fmt.Errorf("must be between 0 and 100")
	}
	return nil
}

// writeReport renders batch results into a PDF file.
func writeReport(path string, outcomes []models.AnalysisOutcome, totals models.BatchTotals, quote models.QuoteBreakdown) error {
	rows := make([]services.ReportRow, 0, len(outcomes)+8)
	for _, o := range outcomes {
		if o.Failed() {
			rows = append(rows, services.ReportRow{Key: o.FileName, Value: "failed: " + o.Error})
			continue
		}
		rows = append(rows, services.ReportRow{
			Key:   o.FileName,
			Value: fmt.Sprintf("%.1f g, %.2f h, %.2f", o.Record.WeightGrams, o.Record.PrintTimeHours, o.Record.Cost),
		})
	}
	rows = append(rows,
		services.ReportRow{Key: "Total weight", Value: fmt.Sprintf("%.1f g", totals.TotalWeightGrams)},
		services.ReportRow{Key: "Total print time", Value: fmt.Sprintf("%.2f h", totals.TotalPrintTimeHours)},
		services.ReportRow{Key: "Material cost", Value: fmt.Sprintf("%.2f", quote.MaterialCost)},
		services.ReportRow{Key: "Base cost", Value: fmt.Sprintf("%.2f", quote.BaseCost)},
		services.ReportRow{Key: "Profit", Value: fmt.Sprintf("%.2f", quote.Profit)},
		services.ReportRow{Key: "Tax", Value: fmt.Sprintf("%.2f", quote.Tax)},
		services.ReportRow{Key: "Final price", Value: fmt.Sprintf("%.2f", quote.FinalPrice)},
	)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := services.ExportPDF(f, "Print Cost Report", rows); err != nil {
		return err
	}
	return f.Close()
}

// formatAnalyzeHuman renders batch results for the terminal.
func formatAnalyzeHuman(outcomes []models.AnalysisOutcome, totals models.BatchTotals, quote models.QuoteBreakdown, advice *models.Advice) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Analysis") + "\n")
	for _, o := range outcomes {
		if o.Failed() {
			sb.WriteString("  " + errorStyle.Render(fmt.Sprintf("✗ %s: %s", o.FileName, o.Error)) + "\n")
			continue
		}
		mark := "✓"
		if !o.Record.Watertight {
			mark = "!"
		}
		sb.WriteString(fmt.Sprintf("  %s %s: %.2f cm³ effective, %.1f g, %.2f h, %.2f\n",
			mark, o.FileName, o.Record.EffectiveVolumeCm3, o.Record.WeightGrams, o.Record.PrintTimeHours, o.Record.Cost))
	}

	sb.WriteString("\n" + titleStyle.Render("Batch") + "\n")
	sb.WriteString(kv("  Pieces", strconv.Itoa(totals.PieceCount)) + "\n")
	sb.WriteString(kv("  Total weight", fmt.Sprintf("%.1f g", totals.TotalWeightGrams)) + "\n")
	sb.WriteString(kv("  Total print time", fmt.Sprintf("%.2f h", totals.TotalPrintTimeHours)) + "\n")

	sb.WriteString("\n" + titleStyle.Render("Quote") + "\n")
	sb.WriteString(kv("  Material", fmt.Sprintf("%.2f", quote.MaterialCost)) + "\n")
	sb.WriteString(kv("  Machine", fmt.Sprintf("%.2f", quote.MachineCost)) + "\n")
	sb.WriteString(kv("  Electricity", fmt.Sprintf("%.2f", quote.ElectricityCost)) + "\n")
	sb.WriteString(kv("  Labour", fmt.Sprintf("%.2f", quote.LabourCost)) + "\n")
	sb.WriteString(kv("  Profit", fmt.Sprintf("%.2f", quote.Profit)) + "\n")
	sb.WriteString(kv("  Tax", fmt.Sprintf("%.2f", quote.Tax)) + "\n")
	sb.WriteString(labelStyle.Render("  Final price") + totalStyle.Render(fmt.Sprintf("%.2f", quote.FinalPrice)) + "\n")

	if advice != nil {
		sb.WriteString("\n" + titleStyle.Render(fmt.Sprintf("Advisory (%s)", advice.Mode)) + "\n")
		sb.WriteString(valueStyle.Render(advice.Analysis) + "\n")
	}
	return sb.String()
}

// formatAnalyzeJSON renders batch results as indented JSON.
func formatAnalyzeJSON(outcomes []models.AnalysisOutcome, totals models.BatchTotals, quote models.QuoteBreakdown, advice *models.Advice) string {
	output := map[string]interface{}{
		"outcomes": outcomes,
		"totals":   totals,
		"quote":    quote,
	}
	if advice != nil {
		output["advice"] = advice
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
