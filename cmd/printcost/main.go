// ABOUTME: Entry point for the printcost CLI
// ABOUTME: Analyzes STL files and prices prints without a running server

package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
