package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nfrund/gallery/internal/config"
	"github.com/nfrund/gallery/internal/logging"
	"github.com/nfrund/gallery/internal/remote"
	"github.com/spf13/cobra"
)

// options are the persistent flags shared by every command.
type options struct {
	apiURL string
	token  string
	bearer bool
}

// NewRootCmd builds the command tree. Flag defaults come from cfg.
func NewRootCmd(cfg config.Provider) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "gallery-cli",
		Short: "Command-line client for the photo gallery service",
		Long: `gallery-cli talks to the gallery REST service directly.

Use it to inspect and change the profile and cards, or run a local
in-memory service with "stub serve".`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", cfg.GetAPIURL(), "base URL of the gallery service")
	root.PersistentFlags().StringVar(&opts.token, "token", cfg.GetAPIToken(), "credential sent in the Authorization header")
	root.PersistentFlags().BoolVar(&opts.bearer, "bearer", cfg.GetTokenIsBearer(), `send the token as "Bearer <token>"`)

	root.AddCommand(
		newVersionCmd(),
		newProfileCmd(opts),
		newAvatarCmd(opts),
		newCardsCmd(opts),
		newStubCmd(),
	)
	return root
}

// Execute executes the root command.
func Execute() {
	cfg := config.New()
	slog.SetDefault(logging.NewWithWriter(os.Stderr, cfg.GetLogFormat(), "warn"))
	if err := NewRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *options) client() (*remote.Client, error) {
	if o.token == "" {
		return nil, fmt.Errorf("no token: pass --token or set GALLERY_API_TOKEN")
	}
	session := remote.NewSession(o.token)
	if o.bearer {
		session.SetAuthToken(o.token)
	}
	return remote.New(o.apiURL, session, remote.Options{Logger: slog.Default()})
}
