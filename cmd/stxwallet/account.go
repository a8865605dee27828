package main

import (
	"context"
	"fmt"

	"github.com/tdex-network/stacks-wallet/internal/core/application"
	"github.com/urfave/cli/v2"
)

// maxAccountCount is the size of the whole uint32 index space.
const maxAccountCount = uint64(^uint32(0)) + 1

var account = cli.Command{
	Name:  "account",
	Usage: "derive the account at the given index and print its addresses",
	Flags: []cli.Flag{
		nameFlag,
		passwordFlag,
		&cli.UintFlag{
			Name:  "index",
			Usage: "the index of the account",
		},
	},
	Action: accountAction,
}

var accounts = cli.Command{
	Name:  "accounts",
	Usage: "derive the first accounts of the wallet and print their addresses",
	Flags: []cli.Flag{
		nameFlag,
		passwordFlag,
		&cli.UintFlag{
			Name:  "count",
			Usage: "the number of accounts to derive",
			Value: 1,
		},
	},
	Action: accountsAction,
}

func accountAction(ctx *cli.Context) error {
	index := ctx.Uint("index")
	if uint64(index) > uint64(^uint32(0)) {
		return fmt.Errorf("index must fit 32 bits")
	}

	infos, err := deriveAccounts(ctx, []uint32{uint32(index)})
	if err != nil {
		return err
	}
	return printJSON(ctx, infos[0])
}

func accountsAction(ctx *cli.Context) error {
	count := ctx.Uint("count")
	if count == 0 || uint64(count) > maxAccountCount {
		return &invalidUsageError{ctx, ctx.Command.Name}
	}

	indexes := make([]uint32, 0, count)
	for i := uint(0); i < count; i++ {
		indexes = append(indexes, uint32(i))
	}

	infos, err := deriveAccounts(ctx, indexes)
	if err != nil {
		return err
	}
	return printJSON(ctx, infos)
}

func deriveAccounts(
	ctx *cli.Context,
	indexes []uint32,
) ([]*application.AccountInfo, error) {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	name := ctx.String(nameFlagName)
	if err := svc.UnlockWallet(
		context.Background(), name, ctx.String(passwordFlagName),
	); err != nil {
		return nil, err
	}
	defer svc.LockWallet(context.Background(), name)

	infos := make([]*application.AccountInfo, 0, len(indexes))
	for _, index := range indexes {
		info, err := svc.DeriveAccount(context.Background(), name, index)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
