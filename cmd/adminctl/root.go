package main

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"console/internal/backend"
	"console/internal/domain"
	"console/internal/infra"
	"console/internal/session"
	"console/internal/storage"
)

// cliEnv holds what every command needs once the root flags are parsed.
type cliEnv struct {
	out io.Writer
	now func() time.Time

	apiURL    string
	tokenFile string
	outDir    string
	timeout   time.Duration

	logger  infra.Logger
	tokens  *session.FileStore
	exports *storage.FileStore
	api     domain.Backend
}

func newEnv(out io.Writer) *cliEnv {
	return &cliEnv{
		out:    out,
		now:    time.Now,
		logger: infra.NewLogger("cli").With().Str("cmd", "adminctl").Logger(),
	}
}

func newRootCmd(env *cliEnv) *cobra.Command {
	root := &cobra.Command{
		Use:           "adminctl",
		Short:         "Operate the admin backend from a terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.setup()
		},
	}
	root.SetOut(env.out)

	flags := root.PersistentFlags()
	flags.StringVar(&env.apiURL, "api", envOr("API_BASE_URL", backend.DefaultBaseURL), "admin API base url")
	flags.StringVar(&env.tokenFile, "token-file", os.Getenv("ADMINCTL_TOKEN_FILE"), "token file (default <config dir>/adminctl/token)")
	flags.StringVar(&env.outDir, "out", ".", "directory for exported files")
	flags.DurationVar(&env.timeout, "timeout", 30*time.Second, "per-request timeout")

	root.AddCommand(
		newLoginCmd(env),
		newLogoutCmd(env),
		newWhoamiCmd(env),
		newUsersCmd(env),
		newPlansCmd(env),
		newBrandsCmd(env),
		newLogsCmd(env),
	)
	return root
}

// setup builds the token store and the client. A client injected by tests is kept.
func (e *cliEnv) setup() error {
	if e.tokens == nil {
		tokens, err := session.NewFileStore(e.tokenFile)
		if err != nil {
			return err
		}
		e.tokens = tokens
	}
	if e.api != nil {
		return nil
	}
	client, err := backend.NewClient(backend.Options{
		BaseURL:        e.apiURL,
		Logger:         &e.logger,
		RequestTimeout: e.timeout,
	})
	if err != nil {
		return err
	}
	e.api = client.WithCredentials(e.tokens)
	return nil
}

func (e *cliEnv) store() (*storage.FileStore, error) {
	if e.exports != nil {
		return e.exports, nil
	}
	s, err := storage.NewFileStore(e.outDir)
	if err != nil {
		return nil, err
	}
	e.exports = s
	return s, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
