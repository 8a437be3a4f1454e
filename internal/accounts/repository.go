package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/marketpro/internal/logging"
)

// countryPrefix is the fixed country code prepended to the 10 digits
// when building a storage key.
const countryPrefix = "91"

var phoneDigitsRe = regexp.MustCompile(`^\d{10}$`)

// ValidPhoneDigits reports whether s is exactly 10 digits.
func ValidPhoneDigits(s string) bool {
	return phoneDigitsRe.MatchString(s)
}

// BuildKey returns the storage key for a 10-digit phone: the fixed
// country prefix followed by the digits.
func BuildKey(phoneDigits string) string {
	return countryPrefix + phoneDigits
}

// KV is the slice of the store client the repository needs.
type KV interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Put(ctx context.Context, path string, doc any) error
}

// Repository abstracts account reads and writes against the remote
// store. No update or delete operations exist by design.
type Repository interface {
	Exists(ctx context.Context, phoneKey string) (bool, error)
	Create(ctx context.Context, a Account) error
	ListAll(ctx context.Context) ([]Account, error)
}

// StoreRepository keeps accounts as one document per phone key under a
// collection path in the remote store.
type StoreRepository struct {
	kv   KV
	path string
	log  logging.Logger
}

func NewStoreRepository(kv KV, collectionPath string, log logging.Logger) *StoreRepository {
	return &StoreRepository{kv: kv, path: collectionPath, log: log}
}

func (r *StoreRepository) keyPath(phoneKey string) string {
	return r.path + "/" + phoneKey
}

// Exists reports whether a non-null document is present at phoneKey.
func (r *StoreRepository) Exists(ctx context.Context, phoneKey string) (bool, error) {
	raw, err := r.kv.Get(ctx, r.keyPath(phoneKey))
	if err != nil {
		return false, fmt.Errorf("check account %s: %w", phoneKey, err)
	}
	return raw != nil, nil
}

// Create writes the account document in a single upsert.
func (r *StoreRepository) Create(ctx context.Context, a Account) error {
	if err := r.kv.Put(ctx, r.keyPath(a.PhoneKey), a); err != nil {
		return fmt.Errorf("create account %s: %w", a.PhoneKey, err)
	}
	r.log.Info(ctx, "account created", "phone_key", a.PhoneKey)
	return nil
}

// ListAll reads the whole collection document and flattens its key/value
// pairs into accounts tagged with their key, skipping null entries.
// The order of the result is whatever order the pairs arrived in.
func (r *StoreRepository) ListAll(ctx context.Context) ([]Account, error) {
	raw, err := r.kv.Get(ctx, r.path)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	if raw == nil {
		return []Account{}, nil
	}

	var docs map[string]*Account
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("list accounts: decode collection: %w", err)
	}

	result := make([]Account, 0, len(docs))
	for key, doc := range docs {
		if doc == nil {
			continue
		}
		acct := *doc
		acct.PhoneKey = key
		result = append(result, acct)
	}

	r.log.Debug(ctx, "roster fetched", "count", len(result))
	return result, nil
}
