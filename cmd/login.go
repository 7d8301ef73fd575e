// ABOUTME: Login command for the favshelf CLI
// ABOUTME: Authenticates with credentials and persists the session token

package cmd

import (
	"context"
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

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session token",
	Long: `Authenticate against the storefront API and persist the returned token.

Exit codes:
  0 - Logged in
  1 - Credentials rejected
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password")
}

// runLogin executes the login attempt and returns an exit code
func runLogin(ctx context.Context, w io.Writer) int {
	if loginUsername == "" || loginPassword == "" {
		fmt.Fprintln(w, "Error: --username and --password are required")
		return 2
	}

	c := client.New(GetAPIURL())
	sess := session.NewManager(c, store.NewFileStore(store.DefaultConfigDir()))

	creds := client.Credentials{Username: loginUsername, Password: loginPassword}
	if err := sess.Login(ctx, creds); err != nil {
		if client.IsRejected(err) {
			fmt.Fprintf(w, "Login failed: %v\n", err)
			return 1
		}
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	user := sess.User()
	if user == nil {
		// The token was issued but /api/auth/me would not accept it
		fmt.Fprintln(w, "Login failed: session could not be established")
		return 1
	}

	fmt.Fprintf(w, "Logged in as %s (id %d)\n", user.Username, user.ID)
	return 0
}
