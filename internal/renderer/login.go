package renderer

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/proto"

	"github.com/shivam1584818/fb-group-finder-backend/internal/config"
)

// Login form selectors
const (
	emailSelector  = "input[name=email]"
	passSelector   = "input[name=pass]"
	submitSelector = "button[name=login]"
)

// signIn fills the login form once for the whole session. The session cookies
// it leaves behind are what every later page in the context sees.
func (hs *headlessSession) signIn(ctx context.Context, login config.LoginConfig) error {
	ctx, cancel := context.WithTimeout(ctx, hs.config.PageTimeout+login.SettleDelay)
	defer cancel()

	page, err := hs.newPage(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignIn, err)
	}
	defer hs.closePage(page)

	if err := hs.navigate(page, login.URL); err != nil {
		return fmt.Errorf("%w: open login page: %v", ErrSignIn, err)
	}

	email, err := page.Element(emailSelector)
	if err != nil {
		return fmt.Errorf("%w: email field: %v", ErrSignIn, err)
	}
	if err := email.Input(login.Email); err != nil {
		return fmt.Errorf("%w: type email: %v", ErrSignIn, err)
	}

	pass, err := page.Element(passSelector)
	if err != nil {
		return fmt.Errorf("%w: password field: %v", ErrSignIn, err)
	}
	if err := pass.Input(login.Password); err != nil {
		return fmt.Errorf("%w: type password: %v", ErrSignIn, err)
	}

	submit, err := page.Element(submitSelector)
	if err != nil {
		return fmt.Errorf("%w: submit button: %v", ErrSignIn, err)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("%w: submit: %v", ErrSignIn, err)
	}

	if err := sleepContext(ctx, login.SettleDelay); err != nil {
		return fmt.Errorf("%w: %v", ErrSignIn, err)
	}

	// Still looking at a password field means the credentials were refused
	stillOnForm, _, err := page.Has(passSelector)
	if err != nil {
		return fmt.Errorf("%w: inspect result: %v", ErrSignIn, err)
	}
	if stillOnForm {
		return fmt.Errorf("%w: credentials rejected", ErrSignIn)
	}

	return nil
}
