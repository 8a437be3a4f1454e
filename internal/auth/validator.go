package auth

import (
	"regexp"
	"time"

	"github.com/dmitrijs2005/marketpro/internal/common"
)

// countryCode is prepended to the operator's digits when building the
// principal's display phone.
const countryCode = "+91"

var phoneDigitsRe = regexp.MustCompile(`^\d{10}$`)

// CredentialValidator turns a login attempt into a Principal.
//
// Contract:
//   - phoneDigits must be exactly 10 digits -> common.ErrInvalidPhoneFormat.
//   - password must be at least 3 characters -> common.ErrPasswordTooShort.
//   - anything else the implementation rejects -> common.ErrInvalidCredentials.
//
// StaticValidator below is a stand-in for a real identity provider;
// callers only ever see this interface.
type CredentialValidator interface {
	Validate(phoneDigits, password string) (*Principal, error)
}

// StaticValidator accepts exactly one fixed operator identity.
type StaticValidator struct {
	phone    string
	password string

	// nowFn is a test seam for the principal's login timestamp.
	nowFn func() time.Time
}

func NewStaticValidator(phone, password string) *StaticValidator {
	return &StaticValidator{phone: phone, password: password, nowFn: time.Now}
}

func (v *StaticValidator) Validate(phoneDigits, password string) (*Principal, error) {
	if !phoneDigitsRe.MatchString(phoneDigits) {
		return nil, common.ErrInvalidPhoneFormat
	}
	if len(password) < 3 {
		return nil, common.ErrPasswordTooShort
	}
	if phoneDigits != v.phone || password != v.password {
		return nil, common.ErrInvalidCredentials
	}

	return &Principal{
		Phone:         countryCode + phoneDigits,
		Role:          RoleAdmin,
		Authenticated: true,
		Name:          "Admin User",
		LastLoginAt:   v.nowFn(),
	}, nil
}
