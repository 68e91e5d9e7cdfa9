package client

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/secure-vault/internal/clipboard"
)

func (a *App) copyCommand(opts *globalOptions) *cobra.Command {
	var clearAfter time.Duration

	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy the password of an item to the clipboard",
		Long: `Copies the password of an item and waits until the clipboard is cleared.
Interrupting the command clears the clipboard at once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.clipboard.Available() {
				return clipboard.ErrUnavailable
			}

			services, lock, err := a.unlock(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer lock()

			item, err := services.VaultService.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if item.DecryptFailed {
				return errUndecryptable
			}
			lock()

			return a.copyAndWait(cmd, item.Password, clearAfter, "Password of "+item.Title)
		},
	}

	cmd.Flags().DurationVar(&clearAfter, "clear-after", 0, "clear delay (configured delay when 0, never when negative)")
	return cmd
}

var errUndecryptable = errors.New("password could not be decrypted with this key")

// copyAndWait copies text and blocks until the auto-clear fires or the
// command context is cancelled. A negative clearAfter copies without waiting.
func (a *App) copyAndWait(cmd *cobra.Command, text string, clearAfter time.Duration, what string) error {
	if err := a.clipboard.Copy(text, clearAfter); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if clearAfter < 0 {
		printOK(w, "%s copied", what)
		return nil
	}

	delay := clearAfter
	if delay == 0 {
		delay = a.cfg.Clipboard.ClearAfter
	}
	if delay <= 0 {
		delay = clipboard.DefaultClearAfter
	}

	printOK(w, "%s copied, clipboard clears in %s (Ctrl+C clears now)", what, delay)

	err := a.clipboard.Wait(cmd.Context())
	if errors.Is(err, context.Canceled) {
		printOK(w, "Clipboard cleared")
		return nil
	}
	return err
}
