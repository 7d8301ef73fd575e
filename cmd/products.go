// ABOUTME: Products command for the favshelf CLI
// ABOUTME: Lists the product catalog in human or JSON form

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mhartsell/favshelf/internal/client"
	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the product catalog",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runProducts(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
}

// runProducts fetches and prints the catalog, returning an exit code
func runProducts(ctx context.Context, w io.Writer) int {
	c := client.New(GetAPIURL())

	products, err := c.Products(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(products, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(products) == 0 {
		fmt.Fprintln(w, "No products available.")
		return 0
	}
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\n", p.ID, p.Name)
	}
	return 0
}
