package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"git.sr.ht/~jakintosh/idtoken/pkg/authn"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify TOKEN",
	Short: "Check a token's signature and expiry",
	Long: `Check that a token was signed with the configured secret and has not
expired. On success the verified claims are written to STDOUT. On failure
the command exits with status 1 without saying why; run with
IDTOKEN_LOG_LEVEL=debug to see the cause.

Example:
  idtoken verify eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		secret, err := cfg.SigningSecret()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load signing secret: %v\n", err)
			os.Exit(1)
		}

		verifier := authn.NewVerifier(secret, nil, logger)
		if err := verifyToken(os.Stdout, verifier, args[0]); err != nil {
			fmt.Fprintln(os.Stderr, "token invalid")
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func verifyToken(
	w io.Writer,
	verifier *authn.Verifier,
	tokenStr string,
) error {
	identity, err := verifier.Verify(tokenStr)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "subject: %s\n", identity.Subject)
	fmt.Fprintf(w, "user id: %s\n", identity.UserID)
	fmt.Fprintf(w, "expires: %s\n", identity.Expiration.UTC().Format(time.RFC3339))
	return nil
}
