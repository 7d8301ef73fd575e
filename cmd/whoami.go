// ABOUTME: Whoami command for the favshelf CLI
// ABOUTME: Restores the session from the stored token and prints the identity

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
	"github.com/mhartsell/favshelf/internal/session"
	"github.com/mhartsell/favshelf/internal/store"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently authenticated user",
	Long: `Attempt silent re-authentication from the stored token and print the identity.

Exit codes:
  0 - Authenticated
  1 - Not logged in
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami executes the bootstrap and returns an exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	c := client.New(GetAPIURL())
	sess := session.NewManager(c, store.NewFileStore(store.DefaultConfigDir()))

	if err := sess.Bootstrap(ctx); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := sess.User()
	if user == nil {
		fmt.Fprintln(w, "Not logged in.")
		return 1
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(user, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "%s (id %d)\n", user.Username, user.ID)
	}
	return 0
}
