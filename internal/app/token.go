package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/authmaint/internal/auth"
	"github.com/dmitrijs2005/authmaint/internal/common"
	"github.com/dmitrijs2005/authmaint/internal/promptx"
)

// Test seam for the password prompt.
var getPassword = promptx.GetPassword

// runToken mints an admin token for the serve-mode API. The operator names
// an admin account and proves the account password; the resulting JWT is
// printed to stdout.
func (app *App) runToken(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "" {
		return errors.New("usage: authmaint token <username> [flags]")
	}
	username := args[0]

	account, err := app.service.GetAccount(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return err
	}
	if !account.Admin {
		return fmt.Errorf("%w: account %q is not an administrator", common.ErrorUnauthorized, username)
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, password); err != nil {
		return common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(account.ID, []byte(app.config.SecretKey), app.config.TokenValidityDuration)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
