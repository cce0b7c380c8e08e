package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"git.sr.ht/~jakintosh/idtoken/internal/config"
	"git.sr.ht/~jakintosh/idtoken/internal/logging"
)

var (
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "idtoken",
	Short: "Issue, inspect and verify identity tokens",
	Long: `Issue, inspect and verify HS256 identity tokens.

The signing secret is read from IDTOKEN_SECRET, or from the file named by
IDTOKEN_SECRET_FILE. It must be at least 32 bytes. Logging is controlled by
IDTOKEN_LOG_LEVEL, IDTOKEN_LOG_MODE and IDTOKEN_LOG_ENCODING.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logger = logging.New(cfg.Logging())
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
