// ABOUTME: History command for the printcost CLI
// ABOUTME: Lists and clears the CSV analysis ledger

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Bibekdka/3dd/services"
)

var historyClear bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or clear past analyses",
	Long:  `List past batch analyses and link scrapes from the CSV ledger, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exitCode := runHistory(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all history entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(w io.Writer) int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
		return 2
	}
	ledger := services.NewHistoryLedger(cfg.HistoryFile)

	if historyClear {
		if err := ledger.Clear(); err != nil {
			fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
			return 2
		}
		fmt.Fprintln(w, "History cleared")
		return 0
	}

	entries, err := ledger.LoadAll()
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
		return 2
	}
	// Newest first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	if jsonOutput {
		data, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No history yet")
		return 0
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("History") + "\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("  %s  %-14s  %-24s  %-30s  %.2f\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.Type, e.Name, e.Details, e.Cost))
	}
	fmt.Fprint(w, sb.String())
	return 0
}
