package accounts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/marketpro/internal/auth"
	"github.com/dmitrijs2005/marketpro/internal/common"
	"github.com/dmitrijs2005/marketpro/internal/logging"
)

// Phase tracks where a provisioning attempt is, or where it stopped.
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseValidating        Phase = "validating"
	PhaseCheckingDuplicate Phase = "checking_duplicate"
	PhaseCreating          Phase = "creating"
	PhaseDone              Phase = "done"
	PhaseFailed            Phase = "failed"
)

// DurationOption is one selectable subscription length.
type DurationOption struct {
	Label  string
	Millis int64
}

// DurationOptions is the fixed set of subscription lengths offered when
// provisioning an account.
var DurationOptions = []DurationOption{
	{Label: "7 Days", Millis: 7 * dayMs},
	{Label: "1 Month", Millis: 30 * dayMs},
	{Label: "3 Months", Millis: 90 * dayMs},
	{Label: "6 Months", Millis: 180 * dayMs},
	{Label: "1 Year", Millis: 365 * dayMs},
	{Label: "2 Years", Millis: 2 * 365 * dayMs},
	{Label: "3 Years", Millis: 3 * 365 * dayMs},
}

// DurationByMillis resolves ms against the offered option set.
func DurationByMillis(ms int64) (DurationOption, bool) {
	for _, opt := range DurationOptions {
		if opt.Millis == ms {
			return opt, true
		}
	}
	return DurationOption{}, false
}

// Request carries the operator's input for a new account. Referrer may
// be left empty; it is then defaulted from an admin actor.
type Request struct {
	PhoneDigits string
	DisplayName string
	DurationMs  int64
	Role        Role
	Referrer    string
}

func (r Request) validate() error {
	if !ValidPhoneDigits(r.PhoneDigits) {
		return common.ErrInvalidPhoneFormat
	}
	if strings.TrimSpace(r.DisplayName) == "" {
		return fmt.Errorf("%w: user name is required", common.ErrValidation)
	}
	if _, ok := DurationByMillis(r.DurationMs); !ok {
		return fmt.Errorf("%w: duration must be one of the offered options", common.ErrValidation)
	}
	switch r.Role {
	case "", RoleUser, RoleAdmin:
	default:
		return fmt.Errorf("%w: role must be user or admin", common.ErrValidation)
	}
	return nil
}

// Provisioner runs the account creation workflow:
//
//	Idle -> Validating -> CheckingDuplicate -> Creating -> Done | Failed
//
// The exists-then-create sequence is not transactional: two concurrent
// attempts for the same key can both pass the duplicate check, and the
// last writer wins. The store offers no conditional write, so this is a
// documented limitation.
type Provisioner struct {
	repo  Repository
	log   logging.Logger
	phase Phase
}

func NewProvisioner(repo Repository, log logging.Logger) *Provisioner {
	return &Provisioner{repo: repo, log: log, phase: PhaseIdle}
}

// Phase returns the phase the last attempt reached.
func (p *Provisioner) Phase() Phase {
	return p.phase
}

func (p *Provisioner) fail(err error) (Account, error) {
	p.phase = PhaseFailed
	return Account{}, err
}

// Provision validates req, checks for a duplicate key, and creates the
// account. Validation failures terminate before any store call.
// Duplicates abort with common.ErrDuplicateAccount and never write. A
// store failure leaves no partial state since creation is one atomic
// document write.
func (p *Provisioner) Provision(ctx context.Context, req Request, actor *auth.Principal, now time.Time) (Account, error) {
	p.phase = PhaseValidating
	if err := req.validate(); err != nil {
		return p.fail(err)
	}

	p.phase = PhaseCheckingDuplicate
	phoneKey := BuildKey(req.PhoneDigits)
	exists, err := p.repo.Exists(ctx, phoneKey)
	if err != nil {
		return p.fail(err)
	}
	if exists {
		p.log.Warn(ctx, "duplicate account rejected", "phone_key", phoneKey)
		return p.fail(fmt.Errorf("%w: %s", common.ErrDuplicateAccount, phoneKey))
	}

	p.phase = PhaseCreating
	role := req.Role
	if role == "" {
		role = RoleUser
	}
	referrer := strings.TrimSpace(req.Referrer)
	if referrer == "" && actor != nil && actor.Role == auth.RoleAdmin {
		referrer = actor.Phone
	}

	nowMs := now.UnixMilli()
	acct := Account{
		PhoneKey:    phoneKey,
		DisplayName: strings.TrimSpace(req.DisplayName),
		CreatedAt:   nowMs,
		ExpiresAt:   nowMs + req.DurationMs,
		LastLoginAt: nowMs,
		Role:        role,
		Status:      StatusActive,
		Referrer:    referrer,
	}

	if err := p.repo.Create(ctx, acct); err != nil {
		return p.fail(err)
	}

	p.phase = PhaseDone
	return acct, nil
}
