package client

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/secure-vault/internal/adapter"
	"github.com/MKhiriev/secure-vault/internal/clipboard"
	"github.com/MKhiriev/secure-vault/internal/config"
	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/internal/service"
	"github.com/MKhiriev/secure-vault/models"
)

// emailEnv names the variable consulted when --email is not given.
const emailEnv = "SECURE_VAULT_EMAIL"

// App is the command-line client. It holds no key material between commands;
// every vault command unlocks a fresh session and locks it on exit.
type App struct {
	cfg       *config.ClientConfig
	buildInfo models.AppBuildInfo

	newAdapter func() (adapter.ServerAdapter, error)
	prompter   Prompter
	clipboard  Clipboard

	in     io.Reader
	out    io.Writer
	errOut io.Writer

	logger *logger.Logger
}

// NewApp wires an App to the terminal, the system clipboard and the server
// at cfg.Adapter.HTTPAddress.
func NewApp(cfg *config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *App {
	return &App{
		cfg:       cfg,
		buildInfo: buildInfo,
		newAdapter: func() (adapter.ServerAdapter, error) {
			return adapter.NewHTTPServerAdapter(cfg.Adapter, logger)
		},
		prompter:  newTermPrompter(os.Stdin, os.Stderr),
		clipboard: clipboard.New(cfg.Clipboard, logger),
		in:        os.Stdin,
		out:       os.Stdout,
		errOut:    os.Stderr,
		logger:    logger,
	}
}

// Run executes the command line of the process. SIGINT and SIGTERM cancel
// the command context.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Execute(ctx, os.Args[1:])
}

// Execute runs the command tree with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	return root.ExecuteContext(ctx)
}

type globalOptions struct {
	email string
}

func (a *App) rootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "secure-vault",
		Short: "Client-side encrypted password vault",
		Long: `secure-vault keeps credentials on a server that only ever sees ciphertext.
Every vault command asks for the master password; keys are never written to disk.

Examples:
  secure-vault register -e alice@example.com
  secure-vault vault add --title GitHub --username alice --generate
  secure-vault copy <id>`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.email, "email", "e", "", "account email (default $"+emailEnv+")")

	root.AddCommand(
		a.registerCommand(opts),
		a.loginCommand(opts),
		a.passwdCommand(opts),
		a.vaultCommand(opts),
		a.generateCommand(),
		a.strengthCommand(),
		a.copyCommand(opts),
		a.versionCommand(),
	)

	return root
}

// services builds the client services over a new server adapter.
func (a *App) services() (*service.ClientServices, error) {
	serverAdapter, err := a.newAdapter()
	if err != nil {
		return nil, err
	}
	return service.NewClientServices(serverAdapter, a.cfg.Crypto, a.logger)
}
