package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/marketpro/internal/accounts"
	"github.com/dmitrijs2005/marketpro/internal/common"
)

var listNow = time.UnixMilli(1_700_000_000_000)

const listDayMs = int64(24 * 60 * 60 * 1000)

func listTestRoster() []accounts.Account {
	nowMs := listNow.UnixMilli()
	return []accounts.Account{
		{
			PhoneKey:    "917020181674",
			DisplayName: "Ravi Kumar",
			CreatedAt:   nowMs - 30*listDayMs,
			ExpiresAt:   nowMs + 10*listDayMs,
			LastLoginAt: nowMs - listDayMs,
			Role:        accounts.RoleUser,
			Status:      accounts.StatusActive,
			Referrer:    "+917020181674",
		},
		{
			PhoneKey:    "918887776660",
			DisplayName: "Lapsed User",
			CreatedAt:   nowMs - 90*listDayMs,
			ExpiresAt:   nowMs - 5*listDayMs,
			LastLoginAt: nowMs - 10*listDayMs,
			Role:        accounts.RoleUser,
			Status:      accounts.StatusActive,
		},
		{
			PhoneKey:    "919998887770",
			DisplayName: "Legacy User",
			CreatedAt:   nowMs - 200*listDayMs,
			LastLoginAt: nowMs - 100*listDayMs,
			Role:        accounts.RoleAdmin,
			Status:      accounts.StatusInactive,
		},
	}
}

func TestList_PrintsCountsAndRows(t *testing.T) {
	app := newTestApp(t, &fakeRepo{ListRet: listTestRoster()})
	var table strings.Builder
	app.out = &table
	lines := captureOutput(t)
	stubNow(t, listNow)

	require.NoError(t, app.List(context.Background(), nil))

	assert.True(t, outputContains(*lines, "Total Users: 3 | Active: 1 | Expired: 1"))
	assert.Contains(t, table.String(), "Ravi Kumar")
	assert.Contains(t, table.String(), "Expires in 10 days")
	assert.Contains(t, table.String(), "Expired 5 days ago")
	assert.Contains(t, table.String(), "No expiry")
}

func TestList_FilterArgument(t *testing.T) {
	app := newTestApp(t, &fakeRepo{ListRet: listTestRoster()})
	var table strings.Builder
	app.out = &table
	lines := captureOutput(t)
	stubNow(t, listNow)

	require.NoError(t, app.List(context.Background(), []string{"expired"}))

	// Counts cover the whole roster even when the view is filtered.
	assert.True(t, outputContains(*lines, "Total Users: 3 | Active: 1 | Expired: 1"))
	assert.Contains(t, table.String(), "Lapsed User")
	assert.NotContains(t, table.String(), "Ravi Kumar")
	assert.NotContains(t, table.String(), "Legacy User")
}

func TestList_QueryArgument(t *testing.T) {
	app := newTestApp(t, &fakeRepo{ListRet: listTestRoster()})
	var table strings.Builder
	app.out = &table
	captureOutput(t)
	stubNow(t, listNow)

	require.NoError(t, app.List(context.Background(), []string{"all", "ravi"}))

	assert.Contains(t, table.String(), "Ravi Kumar")
	assert.NotContains(t, table.String(), "Lapsed User")
}

func TestList_NoMatches(t *testing.T) {
	app := newTestApp(t, &fakeRepo{ListRet: listTestRoster()})
	lines := captureOutput(t)
	stubNow(t, listNow)

	require.NoError(t, app.List(context.Background(), []string{"nosuchuser"}))
	assert.True(t, outputContains(*lines, "No users found."))
}

func TestList_FetchFailurePreservesPreviousRoster(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{ListRet: listTestRoster()}
	app := newTestApp(t, repo)
	var table strings.Builder
	app.out = &table
	lines := captureOutput(t)
	stubNow(t, listNow)

	require.NoError(t, app.List(ctx, nil))

	repo.ListErr = common.ErrStoreUnavailable
	table.Reset()
	require.NoError(t, app.List(ctx, nil))

	assert.True(t, outputContains(*lines, "Failed to load users:"))
	assert.True(t, outputContains(*lines, "Showing previously loaded users."))
	assert.Contains(t, table.String(), "Ravi Kumar")
}

func TestList_FetchFailureWithNoPreviousRoster(t *testing.T) {
	app := newTestApp(t, &fakeRepo{ListErr: common.ErrStoreUnavailable})
	captureOutput(t)
	stubNow(t, listNow)

	err := app.List(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
}

func TestList_SortsNewestFirst(t *testing.T) {
	app := newTestApp(t, &fakeRepo{ListRet: listTestRoster()})
	var table strings.Builder
	app.out = &table
	captureOutput(t)
	stubNow(t, listNow)

	require.NoError(t, app.List(context.Background(), nil))

	out := table.String()
	assert.Less(t, strings.Index(out, "Ravi Kumar"), strings.Index(out, "Lapsed User"))
	assert.Less(t, strings.Index(out, "Lapsed User"), strings.Index(out, "Legacy User"))
}

func TestAddUser_Success(t *testing.T) {
	repo := &fakeRepo{}
	app := newTestApp(t, repo)
	loginTestApp(t, app)
	lines := captureOutput(t)
	stubNow(t, listNow)
	// phone, name, duration option, role, referrer
	stubSimpleText(t, "8887776660", "New User", "1", "", "")

	require.NoError(t, app.AddUser(context.Background()))

	require.Len(t, repo.Created, 1)
	acct := repo.Created[0]
	assert.Equal(t, "918887776660", acct.PhoneKey)
	assert.Equal(t, "New User", acct.DisplayName)
	assert.Equal(t, listNow.UnixMilli()+7*listDayMs, acct.ExpiresAt)
	assert.Equal(t, accounts.RoleUser, acct.Role)
	assert.Equal(t, "+917020181674", acct.Referrer) // defaulted from the admin actor
	assert.True(t, outputContains(*lines, "User added successfully!"))
}

func TestAddUser_Duplicate(t *testing.T) {
	repo := &fakeRepo{ExistsRet: true}
	app := newTestApp(t, repo)
	loginTestApp(t, app)
	lines := captureOutput(t)
	stubNow(t, listNow)
	stubSimpleText(t, "8887776660", "New User", "1", "", "")

	err := app.AddUser(context.Background())
	assert.ErrorIs(t, err, common.ErrDuplicateAccount)
	assert.Empty(t, repo.Created)
	assert.True(t, outputContains(*lines, "User already exists with this phone number!"))
}

func TestAddUser_InvalidPhone(t *testing.T) {
	repo := &fakeRepo{}
	app := newTestApp(t, repo)
	loginTestApp(t, app)
	lines := captureOutput(t)
	stubNow(t, listNow)
	stubSimpleText(t, "1234", "New User", "1", "", "")

	err := app.AddUser(context.Background())
	assert.ErrorIs(t, err, common.ErrInvalidPhoneFormat)
	assert.Empty(t, repo.Created)
	assert.True(t, outputContains(*lines, "Please enter a valid 10-digit phone number"))
}

func TestAddUser_BadDurationChoice(t *testing.T) {
	repo := &fakeRepo{}
	app := newTestApp(t, repo)
	loginTestApp(t, app)
	lines := captureOutput(t)
	stubSimpleText(t, "8887776660", "New User", "99")

	err := app.AddUser(context.Background())
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Empty(t, repo.Created)
	assert.True(t, outputContains(*lines, "Please choose a duration from the list"))
}

func TestAddUser_StoreUnavailable(t *testing.T) {
	repo := &fakeRepo{ExistsErr: fmt.Errorf("%w: dial tcp: timeout", common.ErrStoreUnavailable)}
	app := newTestApp(t, repo)
	loginTestApp(t, app)
	lines := captureOutput(t)
	stubNow(t, listNow)
	stubSimpleText(t, "8887776660", "New User", "1", "", "")

	err := app.AddUser(context.Background())
	assert.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.True(t, outputContains(*lines, "Could not reach the user store. Please try again."))
}
