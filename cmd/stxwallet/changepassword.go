package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

const (
	curPwdFlagName = "current_password"
	newPwdFlagName = "new_password"
)

var changepassword = cli.Command{
	Name:  "changepassword",
	Usage: "change the password used to encrypt the wallet root key",
	Flags: []cli.Flag{
		nameFlag,
		&cli.StringFlag{
			Name:  curPwdFlagName,
			Usage: "the old password to be changed",
		},
		&cli.StringFlag{
			Name:  newPwdFlagName,
			Usage: "the new password that replaces the old one",
		},
	},
	Action: changePasswordAction,
}

func changePasswordAction(ctx *cli.Context) error {
	svc, cleanup, err := getWalletService()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.ChangePassword(
		context.Background(),
		ctx.String(nameFlagName),
		ctx.String(curPwdFlagName),
		ctx.String(newPwdFlagName),
	); err != nil {
		return err
	}

	fmt.Fprintln(ctx.App.Writer, "Done")
	return nil
}
