package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var initwallet = cli.Command{
	Name:  "init",
	Usage: "create a new wallet from a mnemonic seed",
	Flags: []cli.Flag{
		nameFlag,
		passwordFlag,
		&cli.StringFlag{
			Name:     "seed",
			Usage:    "the space separated mnemonic seed of the wallet",
			Required: true,
		},
	},
	Action: initWalletAction,
}

func initWalletAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	name := ctx.String(nameFlagName)
	if err := svc.InitWallet(
		context.Background(),
		name,
		strings.Fields(ctx.String("seed")),
		ctx.String(passwordFlagName),
	); err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "Wallet %s is initialized\n", name)
	return nil
}
