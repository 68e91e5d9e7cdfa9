package client

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"

	"github.com/MKhiriev/secure-vault/internal/service"
)

var errEmptyEmail = errors.New("email is required")

// email resolves the account from --email, then $SECURE_VAULT_EMAIL, then
// asks for it.
func (a *App) email(opts *globalOptions) (string, error) {
	if opts.email != "" {
		return opts.email, nil
	}
	if env := strings.TrimSpace(os.Getenv(emailEnv)); env != "" {
		return env, nil
	}

	line, err := a.prompter.Line("Email: ")
	if err != nil {
		return "", err
	}
	if line = strings.TrimSpace(line); line == "" {
		return "", errEmptyEmail
	}
	return line, nil
}

// unlock signs in and unlocks the vault key. The returned lock function ends
// the server session and wipes the key; it is safe to call more than once.
func (a *App) unlock(ctx context.Context, opts *globalOptions) (*service.ClientServices, func(), error) {
	email, err := a.email(opts)
	if err != nil {
		return nil, nil, err
	}

	password, err := a.prompter.Password("Master password: ")
	if err != nil {
		return nil, nil, err
	}

	services, err := a.services()
	if err != nil {
		return nil, nil, err
	}

	stop := a.spin("Unlocking vault")
	_, err = services.AuthService.Login(ctx, email, password)
	stop()
	if err != nil {
		a.lock(ctx, services)
		return nil, nil, err
	}

	var once sync.Once
	return services, func() { once.Do(func() { a.lock(ctx, services) }) }, nil
}

// lock wipes the session key and ends the server session if one was opened.
func (a *App) lock(ctx context.Context, services *service.ClientServices) {
	if services.Adapter.Token() == "" {
		services.Session.Lock()
		return
	}
	if err := services.AuthService.Logout(context.WithoutCancel(ctx)); err != nil {
		a.logger.Err(err).Str("func", "*App.lock").Msg("error ending server session")
	}
}

// spin shows a spinner on stderr while key derivation runs. Nothing is drawn
// when stderr is not a terminal.
func (a *App) spin(suffix string) func() {
	f, ok := a.errOut.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = " " + suffix + "..."
	s.Start()

	return s.Stop
}
