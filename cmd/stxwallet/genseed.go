package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

var genseed = cli.Command{
	Name:   "genseed",
	Usage:  "generate a 24 words mnemonic seed",
	Action: genSeedAction,
}

func genSeedAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	mnemonic, err := svc.GenSeed(context.Background())
	if err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, strings.Join(mnemonic, " "))
	return nil
}
