// ABOUTME: Favorites commands for the favshelf CLI
// ABOUTME: List, add, and remove favorites for the authenticated user

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mhartsell/favshelf/internal/client"
	"github.com/mhartsell/favshelf/internal/favorites"
	"github.com/mhartsell/favshelf/internal/session"
	"github.com/mhartsell/favshelf/internal/store"
	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorites for the logged-in user",
	Long: `List, add, or remove favorites. All subcommands require a stored session.

Exit codes:
  0 - Success
  1 - Not logged in, or the product is not in the expected state
  2 - Error (connectivity, invalid input)`,
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorited products",
	Run: func(cmd *cobra.Command, args []string) {
		runFavoritesCommand(runFavoritesList)
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add PRODUCT_ID",
	Short: "Mark a product as favorite",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runFavoritesCommand(func(ctx context.Context, w io.Writer, deps favoritesDeps) int {
			return runFavoritesAdd(ctx, w, deps, args[0])
		})
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove PRODUCT_ID",
	Short: "Unmark a favorited product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runFavoritesCommand(func(ctx context.Context, w io.Writer, deps favoritesDeps) int {
			return runFavoritesRemove(ctx, w, deps, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
}

// favoritesDeps carries the resolved session for a favorites subcommand
type favoritesDeps struct {
	api  *client.Client
	user *client.User
}

// runFavoritesCommand restores the session and hands off to the
// subcommand body, exiting with its code
func runFavoritesCommand(body func(ctx context.Context, w io.Writer, deps favoritesDeps) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	exitCode := resolveSessionAndRun(ctx, os.Stdout, body)
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func resolveSessionAndRun(ctx context.Context, w io.Writer, body func(ctx context.Context, w io.Writer, deps favoritesDeps) int) int {
	c := client.New(GetAPIURL())
	sess := session.NewManager(c, store.NewFileStore(store.DefaultConfigDir()))

	if err := sess.Bootstrap(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	user := sess.User()
	if user == nil {
		fmt.Fprintln(w, "Not logged in. Run 'favshelf login' first.")
		return 1
	}

	return body(ctx, w, favoritesDeps{api: c, user: user})
}

// runFavoritesList prints the user's favorites with product names
func runFavoritesList(ctx context.Context, w io.Writer, deps favoritesDeps) int {
	records, err := deps.api.Favorites(ctx, deps.user.ID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(records, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No favorites.")
		return 0
	}

	// Resolve product names; fall back to ids if the catalog fetch fails
	names := map[int]string{}
	if products, err := deps.api.Products(ctx); err == nil {
		for _, p := range products {
			names[p.ID] = p.Name
		}
	}
	for _, r := range records {
		name := names[r.ProductID]
		if name == "" {
			name = fmt.Sprintf("product %d", r.ProductID)
		}
		fmt.Fprintf(w, "%d\t%s\n", r.ProductID, name)
	}
	return 0
}

// runFavoritesAdd marks a product as favorite
func runFavoritesAdd(ctx context.Context, w io.Writer, deps favoritesDeps, arg string) int {
	productID, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid product id %q\n", arg)
		return 2
	}

	record, err := deps.api.AddFavorite(ctx, deps.user.ID, productID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Favorited product %d (favorite id %d)\n", record.ProductID, record.ID)
	return 0
}

// runFavoritesRemove unmarks a product, resolving the favorite record
// id from the product id
func runFavoritesRemove(ctx context.Context, w io.Writer, deps favoritesDeps, arg string) int {
	productID, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid product id %q\n", arg)
		return 2
	}

	records, err := deps.api.Favorites(ctx, deps.user.ID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	favs := favorites.NewSet()
	favs.Replace(records)
	favoriteID, ok := favs.IDFor(productID)
	if !ok {
		fmt.Fprintf(w, "Product %d is not a favorite.\n", productID)
		return 1
	}

	if err := deps.api.RemoveFavorite(ctx, deps.user.ID, favoriteID); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Removed favorite for product %d\n", productID)
	return 0
}
