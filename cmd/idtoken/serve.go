package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"git.sr.ht/~jakintosh/idtoken/internal/routing"
	"git.sr.ht/~jakintosh/idtoken/pkg/authn"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve an endpoint that echoes the caller's verified identity",
	Long: `Start an HTTP server whose /api routes require a valid bearer token.

GET /api/whoami answers with the subject, user id and expiry of the token
presented in the Authorization header. GET /health needs no token.

The listen address comes from IDTOKEN_ADDR (default :8080) and can be
overridden with --addr.

Example:
  idtoken serve --addr :9000`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Addr
		}

		secret, err := cfg.SigningSecret()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load signing secret: %v\n", err)
			os.Exit(1)
		}

		verifier := authn.NewVerifier(secret, nil, logger)
		server := &http.Server{
			Addr:              addr,
			Handler:           routing.BuildRouter(verifier, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := serve(ctx, server); err != nil {
			logger.Error("server stopped", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from IDTOKEN_ADDR)")
}

func serve(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server stopped")
	return nil
}
