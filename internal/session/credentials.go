package session

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/dmitrijs2005/marketpro/internal/logging"
)

const credentialsKey = "remembered_credentials"

// Credentials is the remembered login prefill, kept in the durable
// database only while the operator opts in. Stored as-is; hardening the
// credential store is out of scope here.
type Credentials struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// CredentialKeeper persists remembered login credentials.
type CredentialKeeper struct {
	kv  kv
	log logging.Logger
}

func NewCredentialKeeper(db *sql.DB, log logging.Logger) *CredentialKeeper {
	return &CredentialKeeper{kv: kv{db: db}, log: log}
}

func (k *CredentialKeeper) Remember(ctx context.Context, c Credentials) error {
	blob, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return k.kv.set(ctx, credentialsKey, blob)
}

// Recall returns nil when nothing is remembered. An unreadable blob is
// treated the same and logged.
func (k *CredentialKeeper) Recall(ctx context.Context) (*Credentials, error) {
	blob, err := k.kv.get(ctx, credentialsKey)
	if err != nil {
		return nil, err
	}
	if blob == nil {
		return nil, nil
	}

	var c Credentials
	if err := json.Unmarshal(blob, &c); err != nil {
		k.log.Warn(ctx, "discarding unreadable remembered credentials", "error", err)
		return nil, nil
	}
	return &c, nil
}

func (k *CredentialKeeper) Forget(ctx context.Context) error {
	return k.kv.del(ctx, credentialsKey)
}
