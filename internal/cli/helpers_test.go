package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/marketpro/internal/accounts"
	"github.com/dmitrijs2005/marketpro/internal/auth"
	"github.com/dmitrijs2005/marketpro/internal/config"
	"github.com/dmitrijs2005/marketpro/internal/logging"
	"github.com/dmitrijs2005/marketpro/internal/session"
)

// fakeRepo is a scriptable accounts.Repository.
type fakeRepo struct {
	ListRet   []accounts.Account
	ListErr   error
	ExistsRet bool
	ExistsErr error
	CreateErr error
	Created   []accounts.Account
}

func (f *fakeRepo) Exists(ctx context.Context, phoneKey string) (bool, error) {
	return f.ExistsRet, f.ExistsErr
}

func (f *fakeRepo) Create(ctx context.Context, a accounts.Account) error {
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.Created = append(f.Created, a)
	return nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]accounts.Account, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]accounts.Account(nil), f.ListRet...), nil
}

// newTestApp builds an App over in-memory session databases and the
// given fake repository.
func newTestApp(t *testing.T, repo accounts.Repository) *App {
	t.Helper()
	ctx := context.Background()

	durableDB, err := session.OpenDB(ctx, session.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { durableDB.Close() })

	ephemeralDB, err := session.OpenDB(ctx, session.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { ephemeralDB.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()
	log := logging.NewNop()
	codec := session.NewTokenCodec(cfg.SessionSecret)

	return &App{
		config:    cfg,
		log:       log,
		sessions:  session.NewStore(session.NewDBSlot(durableDB), session.NewDBSlot(ephemeralDB), codec, log),
		creds:     session.NewCredentialKeeper(durableDB, log),
		validator: auth.NewStaticValidator(cfg.OperatorPhone, cfg.OperatorPassword),
		repo:      repo,
		prov:      accounts.NewProvisioner(repo, log),
		reader:    bufio.NewReader(strings.NewReader("")),
		out:       io.Discard,
	}
}

// loginTestApp establishes an authenticated admin session directly.
func loginTestApp(t *testing.T, a *App) {
	t.Helper()
	p := &auth.Principal{
		Phone:         "+917020181674",
		Role:          auth.RoleAdmin,
		Authenticated: true,
		Name:          "Admin User",
		LastLoginAt:   time.Now(),
	}
	require.NoError(t, a.sessions.Login(context.Background(), p, false))
}

// captureOutput swaps printlnFn for a collector and restores it on cleanup.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	t.Cleanup(func() { printlnFn = orig })

	lines := &[]string{}
	printlnFn = func(args ...any) (int, error) {
		*lines = append(*lines, strings.TrimRight(fmt.Sprintln(args...), "\n"))
		return 0, nil
	}
	return lines
}

func outputContains(lines []string, substr string) bool {
	for _, line := range lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// stubSimpleText queues answers for successive getSimpleText prompts.
func stubSimpleText(t *testing.T, answers ...string) {
	t.Helper()
	orig := getSimpleText
	t.Cleanup(func() { getSimpleText = orig })

	i := 0
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		answer := answers[i]
		i++
		return answer, nil
	}
}

func stubPassword(t *testing.T, password string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(w io.Writer) ([]byte, error) {
		return []byte(password), nil
	}
}

// stubConfirmation queues answers for successive yes/no prompts.
func stubConfirmation(t *testing.T, answers ...bool) {
	t.Helper()
	orig := getConfirmation
	t.Cleanup(func() { getConfirmation = orig })

	i := 0
	getConfirmation = func(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
		if i >= len(answers) {
			return false, io.EOF
		}
		answer := answers[i]
		i++
		return answer, nil
	}
}

func stubNow(t *testing.T, now time.Time) {
	t.Helper()
	orig := nowFn
	t.Cleanup(func() { nowFn = orig })
	nowFn = func() time.Time { return now }
}
