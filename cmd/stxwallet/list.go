package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var list = cli.Command{
	Name:   "list",
	Usage:  "list the stored wallets",
	Action: listAction,
}

func listAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	wallets, err := svc.ListWallets(context.Background())
	if err != nil {
		return err
	}
	return printJSON(ctx, wallets)
}
