package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"git.sr.ht/~jakintosh/idtoken/pkg/tokens"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect TOKEN",
	Short: "Show a token's claims without checking its signature",
	Long: `Show a token's subject, user id and expiry status.

No secret is needed, and the signature is NOT checked: use this for display
only. Use 'idtoken verify' to decide whether a token can be trusted.

Example:
  idtoken inspect eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		describeToken(cmd.OutOrStdout(), args[0], tokens.SystemClock())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func describeToken(
	w io.Writer,
	tokenStr string,
	clock tokens.Clock,
) {
	subject, ok := tokens.ExtractSubject(tokenStr)
	if !ok {
		subject = "<absent>"
	}
	userID, ok := tokens.ExtractUserID(tokenStr)
	if !ok {
		userID = "<absent>"
	}

	fmt.Fprintf(w, "subject: %s\n", subject)
	fmt.Fprintf(w, "user id: %s\n", userID)
	fmt.Fprintf(w, "expired: %t\n", tokens.IsExpired(tokenStr, clock))
}
