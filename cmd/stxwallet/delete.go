package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var deletewallet = cli.Command{
	Name:  "delete",
	Usage: "delete a stored wallet, the password is required to confirm",
	Flags: []cli.Flag{
		nameFlag,
		passwordFlag,
	},
	Action: deleteWalletAction,
}

func deleteWalletAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	name := ctx.String(nameFlagName)
	if err := svc.DeleteWallet(
		context.Background(), name, ctx.String(passwordFlagName),
	); err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "Wallet %s is deleted\n", name)
	return nil
}
