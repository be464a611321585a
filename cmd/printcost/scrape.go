// ABOUTME: Scrape command for the printcost CLI
// ABOUTME: Extracts text, images, and STL links from a model listing page

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bibekdka/3dd/cache"
	"github.com/Bibekdka/3dd/models"
	"github.com/Bibekdka/3dd/services"
)

var scrapeAdvise bool

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Extract model details from a listing page",
	Long: `Fetch a model listing page (Printables, MakerWorld, Thingiverse,
Thangs, or any site) and extract its description text, preview images,
and direct STL download links.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runScrape(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeAdvise, "advise", false, "Run AI advisory over the scraped text")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(ctx context.Context, w io.Writer, url string) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
		return 2
	}
	if err := services.ValidateScrapeURL(url); err != nil {
		fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
		return 2
	}

	scraper := services.NewScraper(cfg, cache.New(time.Duration(cfg.ScrapeTTL)*time.Second))
	result, err := scraper.Scrape(ctx, url)
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
		return 2
	}

	var advice *models.Advice
	if scrapeAdvise {
		a := services.NewAdvisor(cfg).Advise(ctx, services.ScrapePrompt(result))
		advice = &a
	}

	ledger := services.NewHistoryLedger(cfg.HistoryFile)
	name := result.Title
	if name == "" {
		name = result.URL
	}
	details := fmt.Sprintf("%d images, %d STL links", len(result.Images), len(result.STLLinks))
	_ = ledger.Append(models.EntryLinkScrape, name, details, 0)

	if jsonOutput {
		output := map[string]interface{}{"result": result}
		if advice != nil {
			output["advice"] = advice
		}
		data, _ := json.MarshalIndent(output, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(name) + "\n")
	sb.WriteString(kv("  Domain", result.Domain) + "\n")
	sb.WriteString(kv("  Images", fmt.Sprintf("%d", len(result.Images))) + "\n")
	for _, img := range result.Images {
		sb.WriteString("    " + valueStyle.Render(img) + "\n")
	}
	sb.WriteString(kv("  STL links", fmt.Sprintf("%d", len(result.STLLinks))) + "\n")
	for _, link := range result.STLLinks {
		sb.WriteString("    " + valueStyle.Render(link) + "\n")
	}
	if result.Text != "" {
		sb.WriteString("\n" + titleStyle.Render("Description") + "\n")
		sb.WriteString(valueStyle.Render(result.Text) + "\n")
	}
	if advice != nil {
		sb.WriteString("\n" + titleStyle.Render(fmt.Sprintf("Advisory (%s)", advice.Mode)) + "\n")
		sb.WriteString(valueStyle.Render(advice.Analysis) + "\n")
	}
	fmt.Fprint(w, sb.String())
	return 0
}
