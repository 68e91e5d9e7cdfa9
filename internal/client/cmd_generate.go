package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/secure-vault/internal/generator"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/models"
)

// generatorService runs locally; generation never needs the server.
func (a *App) generatorService() service.GeneratorService {
	return service.NewGeneratorService(a.logger)
}

func (a *App) generateCommand() *cobra.Command {
	var (
		opts = generator.DefaultOptions()

		noUpper, noLower, noNumbers, noSymbols bool
		copyIt                                 bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password",
		Long: `Generates a password from a cryptographically secure source.

Examples:
  secure-vault generate --length 24
  secure-vault generate --no-symbols --exclude-ambiguous --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.IncludeUppercase = !noUpper
			opts.IncludeLowercase = !noLower
			opts.IncludeNumbers = !noNumbers
			opts.IncludeSymbols = !noSymbols

			generated, err := a.generatorService().Generate(cmd.Context(), opts)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !copyIt {
				fmt.Fprintln(w, generated.Password)
				printStrength(cmd.ErrOrStderr(), generated.Strength)
				return nil
			}

			printStrength(w, generated.Strength)
			return a.copyAndWait(cmd, generated.Password, 0, "Generated password")
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&opts.Length, "length", "l", opts.Length, "password length")
	flags.BoolVar(&noUpper, "no-upper", false, "leave out upper-case letters")
	flags.BoolVar(&noLower, "no-lower", false, "leave out lower-case letters")
	flags.BoolVar(&noNumbers, "no-numbers", false, "leave out digits")
	flags.BoolVar(&noSymbols, "no-symbols", false, "leave out symbols")
	flags.BoolVar(&opts.ExcludeSimilar, "exclude-similar", opts.ExcludeSimilar, "leave out look-alike characters such as l, 1, O and 0")
	flags.BoolVar(&opts.ExcludeAmbiguous, "exclude-ambiguous", opts.ExcludeAmbiguous, "leave out symbols that are hard to type or quote")
	flags.BoolVarP(&copyIt, "copy", "c", false, "copy to the clipboard instead of printing")

	return cmd
}

func (a *App) strengthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strength",
		Short: "Rate a password without storing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password, err := a.prompter.Password("Password: ")
			if err != nil {
				return err
			}

			strength := a.generatorService().Strength(cmd.Context(), models.StrengthRequest{Password: password})
			printStrength(cmd.OutOrStdout(), strength)
			return nil
		},
	}
}
