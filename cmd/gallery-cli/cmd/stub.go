package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nfrund/gallery/internal/remote/remotetest"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newStubCmd() *cobra.Command {
	stub := &cobra.Command{
		Use:   "stub",
		Short: "Run an in-memory gallery service for local development",
	}

	var (
		addr     string
		seedPath string
		token    string
	)
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST contract from memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := newStubServer(afero.NewOsFs(), seedPath, token)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.OutOrStdout(), "stub listening on %s as %s\n", addr, srv.Me().ID)
			return serveUntilDone(ctx, &http.Server{Addr: addr, Handler: srv.Handler()})
		},
	}
	serve.Flags().StringVar(&addr, "addr", ":9000", "listen address")
	serve.Flags().StringVar(&seedPath, "seed", "", "YAML seed file with the user and cards")
	serve.Flags().StringVar(&token, "token", "dev-token", "Authorization value the stub accepts")

	stub.AddCommand(serve)
	return stub
}

// newStubServer builds a stub from a seed file, or with a single default
// user when path is empty.
func newStubServer(fs afero.Fs, path, token string) (*remotetest.Server, error) {
	if path == "" {
		return remotetest.New(token, remotetest.User{ID: "me", Name: "Jacques Cousteau", About: "Sailor, researcher"}), nil
	}
	seed, err := remotetest.LoadSeed(fs, path)
	if err != nil {
		return nil, err
	}
	return remotetest.NewFromSeed(token, seed), nil
}

func serveUntilDone(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	slog.Info("Stopping stub server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
