package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/secure-vault/internal/generator"
	"github.com/MKhiriev/secure-vault/models"
)

var (
	errNothingToChange = errors.New("nothing to change: pass at least one field flag")
	errAborted         = errors.New("aborted")
)

func (a *App) vaultCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vault",
		Aliases: []string{"v"},
		Short:   "Manage vault items",
	}

	cmd.AddCommand(
		a.vaultListCommand(opts),
		a.vaultShowCommand(opts),
		a.vaultAddCommand(opts),
		a.vaultEditCommand(opts),
		a.vaultRemoveCommand(opts),
		a.vaultSearchCommand(opts),
	)

	return cmd
}

func (a *App) vaultListCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all items",
		Args:    cobra.NoArgs,
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

			printItems(cmd.OutOrStdout(), items)
			return nil
		},
	}
}

func (a *App) vaultShowCommand(opts *globalOptions) *cobra.Command {
	var reveal bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, lock, err := a.unlock(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer lock()

			item, err := services.VaultService.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printItem(cmd.OutOrStdout(), item, reveal)
			return nil
		},
	}

	cmd.Flags().BoolVar(&reveal, "reveal", false, "print the password in clear text")
	return cmd
}

// itemFlags are the flags shared by vault add and vault edit.
type itemFlags struct {
	title      string
	username   string
	url        string
	tags       []string
	notes      string
	clearNotes bool
	password   bool
	generate   bool
	length     int
}

// register adds the flags to cmd. edit adds the flags that only make sense
// for an existing item.
func (f *itemFlags) register(cmd *cobra.Command, edit bool) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "item title")
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "login name")
	cmd.Flags().StringVar(&f.url, "url", "", "site address")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "tag, repeatable")
	cmd.Flags().StringVar(&f.notes, "notes", "", "free-form notes, stored encrypted")
	cmd.Flags().BoolVarP(&f.generate, "generate", "g", false, "generate the password")
	cmd.Flags().IntVar(&f.length, "length", generator.DefaultLength, "generated password length")

	if edit {
		cmd.Flags().BoolVarP(&f.password, "password", "p", false, "prompt for a new password")
		cmd.Flags().BoolVar(&f.clearNotes, "clear-notes", false, "remove the notes")
		cmd.MarkFlagsMutuallyExclusive("notes", "clear-notes")
		cmd.MarkFlagsMutuallyExclusive("password", "generate")
	}
}

// secret returns the password an add or edit command should store.
func (a *App) secret(cmd *cobra.Command, f *itemFlags) (string, error) {
	if !f.generate {
		return a.prompter.Password("Item password: ")
	}

	opts := generator.DefaultOptions()
	opts.Length = f.length

	generated, err := a.generatorService().Generate(cmd.Context(), opts)
	if err != nil {
		return "", err
	}
	return generated.Password, nil
}

func (a *App) vaultAddCommand(opts *globalOptions) *cobra.Command {
	f := &itemFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item",
		Long: `Adds an item. The password is prompted for unless --generate is given.

Examples:
  secure-vault vault add --title GitHub --username alice --url https://github.com --tag dev
  secure-vault vault add -t Bank -g --length 24`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := a.secret(cmd, f)
			if err != nil {
				return err
			}

			input := models.VaultItemInput{
				Title:    f.title,
				Username: f.username,
				Password: password,
				URL:      f.url,
				Tags:     f.tags,
			}
			if f.notes != "" {
				input.Notes = &f.notes
			}

			services, lock, err := a.unlock(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer lock()

			item, err := services.VaultService.Create(cmd.Context(), input)
			if err != nil {
				return err
			}

			printOK(cmd.OutOrStdout(), "Added %s (%s)", item.Title, item.ID)
			return nil
		},
	}

	f.register(cmd, false)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *App) vaultEditCommand(opts *globalOptions) *cobra.Command {
	f := &itemFlags{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an item",
		Long:  "Changes only the fields whose flags are given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := a.patch(cmd, f)
			if err != nil {
				return err
			}

			services, lock, err := a.unlock(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer lock()

			item, err := services.VaultService.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}

			printOK(cmd.OutOrStdout(), "Updated %s (%s)", item.Title, item.ID)
			return nil
		},
	}

	f.register(cmd, true)
	return cmd
}

// patch collects the fields whose flags were set explicitly.
func (a *App) patch(cmd *cobra.Command, f *itemFlags) (models.VaultItemPatch, error) {
	var patch models.VaultItemPatch
	changed := cmd.Flags().Changed

	if changed("title") {
		patch.Title = &f.title
	}
	if changed("username") {
		patch.Username = &f.username
	}
	if changed("url") {
		patch.URL = &f.url
	}
	if changed("tag") {
		patch.Tags = &f.tags
	}
	if changed("notes") {
		patch.Notes = &f.notes
	}
	if f.clearNotes {
		empty := ""
		patch.Notes = &empty
	}
	if f.password || f.generate {
		password, err := a.secret(cmd, f)
		if err != nil {
			return models.VaultItemPatch{}, err
		}
		patch.Password = &password
	}

	if patch == (models.VaultItemPatch{}) {
		return models.VaultItemPatch{}, errNothingToChange
	}
	return patch, nil
}

func (a *App) vaultRemoveCommand(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete an item",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer, err := a.prompter.Line(fmt.Sprintf("Delete %s? [y/N] ", args[0]))
				if err != nil {
					return err
				}
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					return errAborted
				}
			}

			services, lock, err := a.unlock(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer lock()

			if err = services.VaultService.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			printOK(cmd.OutOrStdout(), "Deleted %s", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (a *App) vaultSearchCommand(opts *globalOptions) *cobra.Command {
	var req models.VaultSearchRequest

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search items by title, username or URL",
		Long: `Searches items. The query matches title, username and URL case-insensitively;
every --tag must be present on a match.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Query = strings.Join(args, " ")

			services, lock, err := a.unlock(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer lock()

			page, err := services.VaultService.Search(cmd.Context(), req)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printItems(w, page.Items)
			if len(page.Items) > 0 {
				fmt.Fprintln(w, dim(fmt.Sprintf("%d-%d of %d", page.Offset+1, page.Offset+len(page.Items), page.Total)))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&req.Tags, "tag", nil, "required tag, repeatable")
	cmd.Flags().IntVar(&req.Limit, "limit", 0, "page size (server default when 0)")
	cmd.Flags().IntVar(&req.Offset, "offset", 0, "items to skip")
	return cmd
}
