package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/stacks-wallet/internal/config"
	"github.com/tdex-network/stacks-wallet/internal/core/application"
	"github.com/tdex-network/stacks-wallet/internal/core/ports"
	dbbadger "github.com/tdex-network/stacks-wallet/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/stacks-wallet/internal/infrastructure/storage/db/inmemory"
	"github.com/urfave/cli/v2"
)

const (
	nameFlagName     = "name"
	passwordFlagName = "password"
)

var (
	nameFlag = &cli.StringFlag{
		Name:     nameFlagName,
		Usage:    "the name of the wallet",
		Required: true,
	}
	passwordFlag = &cli.StringFlag{
		Name:  passwordFlagName,
		Usage: "the password used to encrypt the wallet root key",
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "stxwallet"
	app.Usage = "Command line interface to manage Stacks HD wallets"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "datadir",
			Usage: "the directory where wallets are stored",
		},
		&cli.StringFlag{
			Name:  "network",
			Usage: "the network of the rendered addresses, either mainnet or testnet",
		},
	}
	app.Before = initConfig
	app.Commands = append(
		app.Commands,
		&genseed,
		&initwallet,
		&account,
		&accounts,
		&changepassword,
		&list,
		&deletewallet,
	)

	return app
}

// initConfig loads the environment configuration with the global flags
// applied on top of it.
func initConfig(ctx *cli.Context) error {
	overrides := make(map[string]interface{})
	if datadir := ctx.String("datadir"); len(datadir) > 0 {
		overrides[config.DatadirKey] = datadir
	}
	if network := ctx.String("network"); len(network) > 0 {
		overrides[config.NetworkKey] = network
	}

	if err := config.InitConfig(overrides); err != nil {
		return err
	}
	log.SetLevel(config.GetLogLevel())
	return nil
}

func getWalletService() (application.WalletService, func(), error) {
	var (
		repoManager ports.RepoManager
		err         error
	)

	switch config.GetDBType() {
	case config.DBTypeInMemory:
		repoManager = inmemory.NewRepoManager()
	default:
		dbLogger := log.New()
		dbLogger.SetLevel(log.WarnLevel)
		repoManager, err = dbbadger.NewRepoManager(config.GetDbDir(), dbLogger)
		if err != nil {
			return nil, nil, err
		}
	}

	svc, err := application.NewWalletService(
		repoManager.VaultRepository(), config.GetNetwork(),
	)
	if err != nil {
		repoManager.Close()
		return nil, nil, err
	}

	return svc, repoManager.Close, nil
}

func printJSON(ctx *cli.Context, resp interface{}) error {
	buf, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return fmt.Errorf("unable to encode response: %w", err)
	}

	fmt.Fprintln(ctx.App.Writer, string(buf))
	return nil
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[stxwallet] %v\n", err)
	}
	os.Exit(1)
}
