package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "productstore",
	Short: "Product catalogue administration CLI",
	Long:  "productstore manages the product catalogue database: schema setup, seeding, and catalogue queries.",
}

func init() {
	// Database
	rootCmd.AddCommand(dbCreateCmd)
	rootCmd.AddCommand(dbDropCmd)
	rootCmd.AddCommand(seedCmd)

	// Catalogue
	rootCmd.AddCommand(productsCmd)
}
