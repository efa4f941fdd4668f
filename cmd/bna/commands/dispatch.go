package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"bna/internal/app"
	"bna/internal/domain"
	"bna/internal/live"
)

// intent is the single top-level action of one invocation.
type intent int

const (
	intentShow intent = iota // resolve an account and display it
	intentNew
	intentDelete
	intentList
	intentRestore
)

// resolveIntent picks the first matching intent in fixed priority order, so
// combined flags never run two actions.
func (o options) resolveIntent() intent {
	switch {
	case o.newAccount:
		return intentNew
	case o.deleteAccount:
		return intentDelete
	case o.list:
		return intentList
	case o.restore:
		return intentRestore
	default:
		return intentShow
	}
}

var (
	errDeleteNeedsSerial = errors.New("--delete requires a serial argument")
	errRestoreNeedsArgs  = errors.New("--restore requires a serial and a restore code")
)

// run executes the resolved intent against the wired app, writing results
// to out.
func run(ctx context.Context, a *app.App, o options, args []string, out io.Writer) error {
	switch o.resolveIntent() {
	case intentNew:
		acct, err := a.Accounts.ProvisionNew(ctx, o.region)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Success. Your new serial is: %s\n", acct.Serial.Pretty())
		return showAccount(ctx, a, o, acct, out)

	case intentDelete:
		if len(args) == 0 {
			return errDeleteNeedsSerial
		}
		serial, err := a.Accounts.Delete(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Successfully deleted serial %s.\n", serial.Pretty())
		return nil

	case intentList:
		entries := a.Accounts.List()
		for _, e := range entries {
			if e.Default {
				fmt.Fprintf(out, "%s (default)\n", e.Serial.Pretty())
			} else {
				fmt.Fprintln(out, e.Serial.Pretty())
			}
		}
		fmt.Fprintf(out, "%d items\n", len(entries))
		return nil

	case intentRestore:
		if len(args) < 2 {
			return errRestoreNeedsArgs
		}
		acct, err := a.Accounts.Restore(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return showAccount(ctx, a, o, acct, out)

	default:
		var explicit string
		if len(args) > 0 {
			explicit = args[0]
		}
		acct, err := a.Accounts.Resolve(explicit)
		if err != nil {
			return err
		}
		return showAccount(ctx, a, o, acct, out)
	}
}

// showAccount is the shared tail for provisioned, restored and resolved
// accounts: apply the set-default side effect, then exactly one display mode.
func showAccount(ctx context.Context, a *app.App, o options, acct domain.Account, out io.Writer) error {
	if o.setDefault {
		if err := a.Accounts.SetDefault(acct.Serial); err != nil {
			return err
		}
	}

	switch {
	case o.restoreCode:
		fmt.Fprintln(out, a.Engine.RestoreCode(acct.Serial, acct.Secret))

	case o.otpauthURL:
		url, err := a.Engine.OtpauthURL(acct.Serial, acct.Secret)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, url)

	case o.interactive:
		return live.Run(ctx, out, live.DefaultInterval, func() (string, error) {
			code, remaining, err := a.Engine.Token(acct.Secret)
			if err != nil {
				return "", err
			}
			return formatToken(code, remaining, o.remaining), nil
		})

	default:
		code, remaining, err := a.Engine.Token(acct.Secret)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatToken(code, remaining, o.remaining))
	}
	return nil
}

// formatToken renders a code zero-padded to 8 digits, optionally with the
// remaining validity window.
func formatToken(code, remaining int, showRemaining bool) string {
	if showRemaining {
		return fmt.Sprintf("%08d (%02ds remaining)", code, remaining)
	}
	return fmt.Sprintf("%08d", code)
}
