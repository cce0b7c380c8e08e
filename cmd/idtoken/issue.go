package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"git.sr.ht/~jakintosh/idtoken/pkg/tokens"
)

// issueCmd represents the issue command
var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a signed identity token",
	Long: `Issue a signed identity token valid for one hour.

This is the call a login endpoint makes once a user's credentials check out.
The token is written to STDOUT.

Example:
  idtoken issue --subject alice@example.com --uid 42`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		subject, _ := cmd.Flags().GetString("subject")
		userID, _ := cmd.Flags().GetString("uid")

		secret, err := cfg.SigningSecret()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load signing secret: %v\n", err)
			os.Exit(1)
		}

		token, err := issueToken(secret, tokens.SystemClock(), subject, userID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to issue token: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(token.Encoded())
	},
}

func init() {
	rootCmd.AddCommand(issueCmd)
	issueCmd.Flags().StringP("subject", "s", "", "User email (sub claim)")
	issueCmd.Flags().StringP("uid", "u", "", "Durable user id (uid claim)")
	_ = issueCmd.MarkFlagRequired("subject")
	_ = issueCmd.MarkFlagRequired("uid")
}

func issueToken(
	secret tokens.Secret,
	clock tokens.Clock,
	subject string,
	userID string,
) (*tokens.IdentityToken, error) {
	token, err := tokens.InitServer(secret, clock).IssueIdentityToken(subject, userID)
	if err != nil {
		return nil, err
	}
	logger.Info("identity token issued",
		zap.String("subject", token.Subject()),
		zap.String("uid", token.UserID()),
		zap.Time("expires", token.Expiration()),
	)
	return token, nil
}
