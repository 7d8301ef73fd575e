// ABOUTME: Logout command for the favshelf CLI
// ABOUTME: Clears the stored session token without any network call

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mhartsell/favshelf/internal/client"
	"github.com/mhartsell/favshelf/internal/session"
	"github.com/mhartsell/favshelf/internal/store"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout drops the local session and returns an exit code
func runLogout(w io.Writer) int {
	c := client.New(GetAPIURL())
	sess := session.NewManager(c, store.NewFileStore(store.DefaultConfigDir()))
	sess.Logout()

	fmt.Fprintln(w, "Logged out.")
	return 0
}
