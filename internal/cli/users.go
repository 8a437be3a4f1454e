package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/marketpro/internal/accounts"
	"github.com/dmitrijs2005/marketpro/internal/auth"
	"github.com/dmitrijs2005/marketpro/internal/common"
)

// List refreshes the roster and prints it.
//
// Arguments are optional: a leading "all", "active" or "expired" token
// selects the expiry filter, and whatever follows is a search query
// matched against phone, name and referrer. When the refresh fails the
// previously fetched roster is shown instead, so a flaky store never
// blanks the screen.
func (a *App) List(ctx context.Context, args []string) error {
	filter := accounts.FilterAll
	if len(args) > 0 {
		if f, ok := accounts.ParseFilter(args[0]); ok {
			filter = f
			args = args[1:]
		}
	}
	query := strings.Join(args, " ")

	roster, err := a.repo.ListAll(ctx)
	if err != nil {
		a.log.Error(ctx, "roster refresh failed", "error", err)
		printlnFn("Failed to load users:", err.Error())
		if a.roster == nil {
			return err
		}
		printlnFn("Showing previously loaded users.")
	} else {
		accounts.SortRoster(roster)
		a.roster = roster
	}

	now := nowFn()
	counts := accounts.AggregateCounts(a.roster, now)
	printlnFn(fmt.Sprintf("Total Users: %d | Active: %d | Expired: %d", counts.Total, counts.Active, counts.Expired))

	visible := accounts.FilterRoster(a.roster, query, filter, now)
	if len(visible) == 0 {
		printlnFn("No users found.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHONE\tNAME\tCREATED\tLAST LOGIN\tSTATUS\tSUBSCRIPTION\tREFERRER")
	for _, acct := range visible {
		status := accounts.ComputeStatus(acct, now)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			accounts.FormatPhone(acct.PhoneKey),
			acct.DisplayName,
			accounts.FormatTimestamp(acct.CreatedAt, now),
			accounts.FormatTimestamp(acct.LastLoginAt, now),
			acct.Status,
			status.Label,
			acct.Referrer,
		)
	}
	return w.Flush()
}

// AddUser walks the operator through provisioning a new account.
func (a *App) AddUser(ctx context.Context) error {
	actor := a.sessions.Current()

	phone, err := getSimpleText(a.reader, "Enter phone number (10 digits)", a.out)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	duration, err := a.pickDuration()
	if err != nil {
		printlnFn("Please choose a duration from the list")
		return err
	}

	roleInput, err := getSimpleText(a.reader, "Role (user/admin) [user]", a.out)
	if err != nil {
		return err
	}

	var referrer string
	if actor != nil && actor.Role == auth.RoleAdmin {
		referrer, err = getSimpleText(a.reader, "Referrer (leave blank to use your phone)", a.out)
		if err != nil {
			return err
		}
	}

	req := accounts.Request{
		PhoneDigits: phone,
		DisplayName: name,
		DurationMs:  duration.Millis,
		Role:        accounts.Role(strings.ToLower(roleInput)),
		Referrer:    referrer,
	}

	acct, err := a.prov.Provision(ctx, req, actor, nowFn())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateAccount):
			printlnFn("User already exists with this phone number!")
		case errors.Is(err, common.ErrInvalidPhoneFormat):
			printlnFn("Please enter a valid 10-digit phone number")
		case errors.Is(err, common.ErrValidation):
			printlnFn("Invalid input:", err.Error())
		case errors.Is(err, common.ErrStoreUnavailable):
			printlnFn("Could not reach the user store. Please try again.")
		default:
			printlnFn("Failed to add user:", err.Error())
		}
		return err
	}

	status := accounts.ComputeStatus(acct, nowFn())
	printlnFn("User added successfully!")
	printlnFn(fmt.Sprintf("%s (%s), %s", acct.DisplayName, accounts.FormatPhone(acct.PhoneKey), status.Label))
	return nil
}

// pickDuration shows the numbered subscription menu and returns the
// chosen option.
func (a *App) pickDuration() (accounts.DurationOption, error) {
	printlnFn("Subscription duration:")
	for i, opt := range accounts.DurationOptions {
		printlnFn(fmt.Sprintf("  %d. %s", i+1, opt.Label))
	}

	choice, err := getSimpleText(a.reader, "Choose an option", a.out)
	if err != nil {
		return accounts.DurationOption{}, err
	}

	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(accounts.DurationOptions) {
		return accounts.DurationOption{}, fmt.Errorf("%w: unknown duration option %q", common.ErrValidation, choice)
	}
	return accounts.DurationOptions[n-1], nil
}
