// Package cli is the interactive admin console: a REPL over the
// session store, the credential validator, and the account repository.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/marketpro/internal/accounts"
	"github.com/dmitrijs2005/marketpro/internal/auth"
	"github.com/dmitrijs2005/marketpro/internal/config"
	"github.com/dmitrijs2005/marketpro/internal/logging"
	"github.com/dmitrijs2005/marketpro/internal/session"
	"github.com/dmitrijs2005/marketpro/internal/store"
)

// nowFn is a test seam for the clock all commands evaluate against.
var nowFn = time.Now

type App struct {
	config    *config.Config
	log       logging.Logger
	sessions  *session.Store
	creds     *session.CredentialKeeper
	validator auth.CredentialValidator
	repo      accounts.Repository
	prov      *accounts.Provisioner

	// roster is the last successfully fetched account list. A failed
	// refresh leaves it untouched so the operator keeps seeing data.
	roster []accounts.Account

	reader *bufio.Reader
	out    io.Writer

	durableDB   *sql.DB
	ephemeralDB *sql.DB
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	durableDB, err := session.OpenDB(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, err
	}

	ephemeralDB, err := session.OpenDB(ctx, session.MemoryDSN)
	if err != nil {
		durableDB.Close()
		return nil, err
	}

	codec := session.NewTokenCodec(cfg.SessionSecret)
	sessions := session.NewStore(session.NewDBSlot(durableDB), session.NewDBSlot(ephemeralDB), codec, log)
	creds := session.NewCredentialKeeper(durableDB, log)

	kv := store.NewClient(cfg.StoreBaseURL, cfg.RequestTimeout, log)
	repo := accounts.NewStoreRepository(kv, cfg.UsersPath, log)

	return &App{
		config:      cfg,
		log:         log,
		sessions:    sessions,
		creds:       creds,
		validator:   auth.NewStaticValidator(cfg.OperatorPhone, cfg.OperatorPassword),
		repo:        repo,
		prov:        accounts.NewProvisioner(repo, log),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		durableDB:   durableDB,
		ephemeralDB: ephemeralDB,
	}, nil
}

func (a *App) Close() {
	a.durableDB.Close()
	a.ephemeralDB.Close()
}

func (a *App) isLoggedIn() bool {
	return auth.CanAccess(a.sessions.Current())
}

// Run restores any persisted session and hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	if p := a.sessions.Restore(ctx); p != nil {
		printlnFn("Welcome back,", p.Name)
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) status() string {
	if p := a.sessions.Current(); p != nil {
		return p.Phone
	}
	return "logged out"
}
