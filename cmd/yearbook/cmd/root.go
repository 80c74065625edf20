package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/batch26/keepsake/internal/app"
	"github.com/batch26/keepsake/internal/config"
	"github.com/batch26/keepsake/internal/logger"
	"github.com/batch26/keepsake/internal/session"
)

// Env is what every command runs against: the services and the slot that
// holds the signed-in identity between invocations.
type Env struct {
	App  *app.App
	Slot session.Slot
	// Close runs after the command. Nil leaves the app open.
	Close func() error
}

// Loader builds the Env once per invocation.
type Loader func(ctx context.Context) (*Env, error)

// LoadFromEnv reads the configuration from the environment and .env. The
// session lives in SESSION_FILE. Logs go to stderr so stdout stays parseable.
func LoadFromEnv(ctx context.Context) (*Env, error) {
	cfg := config.Load()

	logger.Init(logger.Options{
		Dev:       cfg.IsDevelopment(),
		SentryDSN: cfg.SentryDSN,
		Env:       cfg.AppEnv,
		Output:    os.Stderr,
	})

	a, err := app.NewHeadless(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Env{App: a, Slot: session.NewFile(cfg.SessionFile), Close: a.Close}, nil
}

type envKey struct{}

func envFrom(cmd *cobra.Command) *Env {
	env, _ := cmd.Context().Value(envKey{}).(*Env)
	return env
}

func Root(load Loader) *cobra.Command {
	root := &cobra.Command{
		Use:          "yearbook",
		Short:        "Browse and sign the Batch '26 keepsake from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, env))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			env := envFrom(cmd)
			if env == nil || env.Close == nil {
				return nil
			}
			return env.Close()
		},
	}

	root.AddCommand(
		SignUpCmd(),
		SignInCmd(),
		SignOutCmd(),
		WhoAmICmd(),
		StudentsCmd(),
		ProfileCmd(),
		GuestbookCmd(),
		SignCmd(),
		MessagesCmd(),
		PostCmd(),
		MediaCmd(),
		UploadCmd(),
		TimelineCmd(),
		MigrateCmd(),
	)

	return root
}
