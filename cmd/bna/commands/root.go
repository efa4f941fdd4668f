package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bna/internal/app"
)

// version is the reported tool version; overridable at build time via
// -ldflags "-X bna/cmd/bna/commands.version=...".
var version = "dev"

// options is the full parsed flag surface of one invocation.
type options struct {
	configPath string
	region     string

	newAccount    bool
	deleteAccount bool
	list          bool
	restore       bool

	interactive bool
	remaining   bool
	restoreCode bool
	otpauthURL  bool
	setDefault  bool
}

// Execute runs the CLI. SIGINT and SIGTERM cancel the command context, which
// ends the interactive display cleanly; no other operation mutates state
// after it returns, so cancellation is always safe.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:     "bna [serial]",
		Short:   "Battle.net mobile authenticator for the command line",
		Version: version,
		Args:    cobra.MaximumNArgs(2),
		// Errors are reported once, by main, with the Error: prefix.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(app.Config{ConfigPath: opts.configPath})
			if err != nil {
				return err
			}
			return run(cmd.Context(), a, *opts, args, cmd.OutOrStdout())
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to the config file (default: platform config dir)")
	flags.StringVar(&opts.region, "region", "US", "region to provision new serials in")
	flags.BoolVar(&opts.newAccount, "new", false, "provision a new authenticator")
	flags.BoolVar(&opts.deleteAccount, "delete", false, "delete the given serial from the store")
	flags.BoolVar(&opts.list, "list", false, "list all stored serials")
	flags.BoolVar(&opts.restore, "restore", false, "restore a serial from its restore code: --restore <serial> <code>")
	flags.BoolVar(&opts.interactive, "interactive", false, "refresh the current code every second until interrupted")
	flags.BoolVar(&opts.remaining, "remaining", false, "also show how long the code remains valid")
	flags.BoolVar(&opts.restoreCode, "restore-code", false, "print the account's restore code instead of a token")
	flags.BoolVar(&opts.otpauthURL, "otpauth-url", false, "print the account as an otpauth:// URL instead of a token")
	flags.BoolVar(&opts.setDefault, "set-default", false, "make the resolved serial the default")

	return root
}
