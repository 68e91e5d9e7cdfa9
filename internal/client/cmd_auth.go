package client

import (
	"errors"

	"github.com/spf13/cobra"
)

var errPasswordMismatch = errors.New("passwords do not match")

// newPassword asks for a password twice and fails when the answers differ.
func (a *App) newPassword(prompt string) (string, error) {
	password, err := a.prompter.Password(prompt)
	if err != nil {
		return "", err
	}
	repeated, err := a.prompter.Password("Repeat " + prompt)
	if err != nil {
		return "", err
	}
	if password != repeated {
		return "", errPasswordMismatch
	}
	return password, nil
}

func (a *App) registerCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account and a new vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := a.email(opts)
			if err != nil {
				return err
			}
			password, err := a.newPassword("master password: ")
			if err != nil {
				return err
			}

			services, err := a.services()
			if err != nil {
				return err
			}

			stop := a.spin("Deriving keys")
			user, err := services.AuthService.Register(cmd.Context(), email, password)
			stop()
			a.lock(cmd.Context(), services)
			if err != nil {
				return err
			}

			printOK(cmd.OutOrStdout(), "Registered %s", user.Email)
			return nil
		},
	}
}

func (a *App) loginCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Check the master password against the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			services, lock, err := a.unlock(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer lock()

			items, err := services.VaultService.List(cmd.Context())
			if err != nil {
				return err
			}

			printOK(cmd.OutOrStdout(), "Vault unlocked, %d item(s)", len(items))
			return nil
		},
	}
}

func (a *App) passwdCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the master password",
		Long:  "Changes the master password. The vault key is re-wrapped; items are not re-encrypted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := a.email(opts)
			if err != nil {
				return err
			}
			current, err := a.prompter.Password("Current master password: ")
			if err != nil {
				return err
			}
			next, err := a.newPassword("new master password: ")
			if err != nil {
				return err
			}

			services, err := a.services()
			if err != nil {
				return err
			}

			stop := a.spin("Re-wrapping vault key")
			err = services.AuthService.ChangePassword(cmd.Context(), email, current, next)
			stop()
			a.lock(cmd.Context(), services)
			if err != nil {
				return err
			}

			printOK(cmd.OutOrStdout(), "Master password changed")
			return nil
		},
	}
}
