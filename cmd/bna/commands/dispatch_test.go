package commands

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"bna/internal/app"
	"bna/internal/domain"
	"bna/internal/services/account"
	"bna/internal/store"
)

const (
	serialA = domain.Serial("US123456789012")
	serialB = domain.Serial("EU150298765432")
)

// stubEngine satisfies domain.TokenEngine with canned answers.
type stubEngine struct {
	enrolled domain.Account
	restored domain.Secret
	err      error
}

func (f *stubEngine) Token(domain.Secret) (int, int, error) { return 42, 17, nil }

func (f *stubEngine) RequestNewSerial(context.Context, string) (domain.Account, error) {
	return f.enrolled, f.err
}

func (f *stubEngine) Restore(context.Context, domain.Serial, string) (domain.Secret, error) {
	return f.restored, f.err
}

func (f *stubEngine) RestoreCode(domain.Serial, domain.Secret) string { return "0123456789" }

func (f *stubEngine) OtpauthURL(domain.Serial, domain.Secret) (string, error) {
	return "otpauth://totp/Battle.net:stub", nil
}

func newTestApp(t *testing.T, eng domain.TokenEngine) *app.App {
	t.Helper()
	st, err := store.Load(filepath.Join(t.TempDir(), "bna.conf"))
	require.NoError(t, err)
	return &app.App{
		Store:    st,
		Engine:   eng,
		Accounts: account.New(st, eng, zerolog.Nop()),
		Log:      zerolog.Nop(),
	}
}

func runCapture(t *testing.T, a *app.App, o options, args ...string) (string, error) {
	t.Helper()
	var buf strings.Builder
	err := run(context.Background(), a, o, args, &buf)
	return buf.String(), err
}

func TestRun_NewProvisionsAndPromotes(t *testing.T) {
	a := newTestApp(t, &stubEngine{enrolled: domain.Account{
		Serial: domain.NormalizeSerial("US-1234-5678-9012"),
		Secret: domain.Secret{0x1a, 0x2b},
	}})

	out, err := runCapture(t, a, options{newAccount: true, region: "US"})
	require.NoError(t, err)
	require.Contains(t, out, "Success. Your new serial is: US-1234-5678-9012")

	secret, ok := a.Store.Secret(serialA)
	require.True(t, ok)
	require.Equal(t, domain.Secret{0x1a, 0x2b}, secret)

	def, ok := a.Store.DefaultSerial()
	require.True(t, ok)
	require.Equal(t, serialA, def)
}

func TestRun_DeleteThenBareInvocation(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	require.NoError(t, a.Accounts.Add(serialA, domain.Secret{1}, false))
	require.NoError(t, a.Accounts.Add(serialB, domain.Secret{2}, false))

	out, err := runCapture(t, a, options{deleteAccount: true}, string(serialA))
	require.NoError(t, err)
	require.Contains(t, out, "Successfully deleted serial US-1234-5678-9012.")
	require.Equal(t, []domain.Serial{serialB}, a.Store.Serials())

	_, ok := a.Store.DefaultSerial()
	require.False(t, ok)

	// A bare invocation now has accounts but no default to fall back on.
	_, err = runCapture(t, a, options{})
	require.ErrorIs(t, err, account.ErrNoDefaultSerial)
}

func TestRun_DeleteRequiresSerial(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	_, err := runCapture(t, a, options{deleteAccount: true})
	require.ErrorIs(t, err, errDeleteNeedsSerial)
}

func TestRun_ListEmptyStore(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	out, err := runCapture(t, a, options{list: true})
	require.NoError(t, err)
	require.Equal(t, "0 items\n", out)
}

func TestRun_ListMarksDefault(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	require.NoError(t, a.Accounts.Add(serialA, domain.Secret{1}, false))
	require.NoError(t, a.Accounts.Add(serialB, domain.Secret{2}, false))

	out, err := runCapture(t, a, options{list: true})
	require.NoError(t, err)
	require.Contains(t, out, "US-1234-5678-9012 (default)\n")
	require.Contains(t, out, "EU-1502-9876-5432\n")
	require.Contains(t, out, "2 items\n")
}

func TestRun_TokenWithRemaining(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	require.NoError(t, a.Accounts.Add(serialA, domain.Secret{1}, false))

	out, err := runCapture(t, a, options{remaining: true}, "US-1234-5678-9012")
	require.NoError(t, err)
	require.Equal(t, "00000042 (17s remaining)\n", out)
}

func TestRun_TokenWithoutRemaining(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	require.NoError(t, a.Accounts.Add(serialA, domain.Secret{1}, false))

	out, err := runCapture(t, a, options{})
	require.NoError(t, err)
	require.Equal(t, "00000042\n", out)
}

func TestRun_EmptyStoreWithoutSerial(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	_, err := runCapture(t, a, options{})
	require.ErrorIs(t, err, account.ErrNoAuthenticators)
}

func TestRun_RestoreRequiresBothArgs(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	_, err := runCapture(t, a, options{restore: true}, "US-1234-5678-9012")
	require.ErrorIs(t, err, errRestoreNeedsArgs)
}

func TestRun_RestoreStoresAndShowsToken(t *testing.T) {
	a := newTestApp(t, &stubEngine{restored: domain.Secret{7}})

	out, err := runCapture(t, a, options{restore: true}, "US-1234-5678-9012", "0123456789")
	require.NoError(t, err)
	require.Equal(t, "00000042\n", out)

	secret, ok := a.Store.Secret(serialA)
	require.True(t, ok)
	require.Equal(t, domain.Secret{7}, secret)
}

func TestRun_SetDefaultModifier(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	require.NoError(t, a.Accounts.Add(serialA, domain.Secret{1}, false))
	require.NoError(t, a.Accounts.Add(serialB, domain.Secret{2}, false))

	_, err := runCapture(t, a, options{setDefault: true}, string(serialB))
	require.NoError(t, err)

	def, ok := a.Store.DefaultSerial()
	require.True(t, ok)
	require.Equal(t, serialB, def)
}

func TestRun_RestoreCodeModifier(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	require.NoError(t, a.Accounts.Add(serialA, domain.Secret{1}, false))

	out, err := runCapture(t, a, options{restoreCode: true})
	require.NoError(t, err)
	require.Equal(t, "0123456789\n", out)
}

func TestRun_OtpauthURLModifier(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	require.NoError(t, a.Accounts.Add(serialA, domain.Secret{1}, false))

	out, err := runCapture(t, a, options{otpauthURL: true})
	require.NoError(t, err)
	require.Equal(t, "otpauth://totp/Battle.net:stub\n", out)
}

func TestRun_RestoreCodeWinsOverOtpauthURL(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	require.NoError(t, a.Accounts.Add(serialA, domain.Secret{1}, false))

	out, err := runCapture(t, a, options{restoreCode: true, otpauthURL: true})
	require.NoError(t, err)
	require.Equal(t, "0123456789\n", out)
}

func TestRun_IntentPriorityNewWins(t *testing.T) {
	a := newTestApp(t, &stubEngine{enrolled: domain.Account{Serial: serialA, Secret: domain.Secret{1}}})

	out, err := runCapture(t, a, options{newAccount: true, list: true, region: "US"})
	require.NoError(t, err)
	require.Contains(t, out, "Success.")
	require.NotContains(t, out, "items")
}

func TestRun_InteractiveStopsOnCancel(t *testing.T) {
	a := newTestApp(t, &stubEngine{})
	require.NoError(t, a.Accounts.Add(serialA, domain.Secret{1}, false))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf strings.Builder
	err := run(ctx, a, options{interactive: true, remaining: true}, nil, &buf)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "\r00000042 (17s remaining)")
}

func TestFormatToken(t *testing.T) {
	require.Equal(t, "00000042", formatToken(42, 17, false))
	require.Equal(t, "00000042 (07s remaining)", formatToken(42, 7, true))
	require.Equal(t, "12345678", formatToken(12345678, 30, false))
}
