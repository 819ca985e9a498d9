package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tourze/tron-api/address"
	"github.com/tourze/tron-api/cmd/utils"
)

var (
	convertAddressCommand = &cli.Command{
		Action:    convertAddress,
		Name:      "convertaddr",
		Usage:     "print both renderings of an address",
		ArgsUsage: "<address>",
		Description: `
Accepts either the hex or the base58 rendering and prints both.
`,
	}
)

func convertAddress(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	if ctx.NArg() != 1 {
		return fmt.Errorf("miss address argument")
	}
	addr, err := address.ToAddress(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	fmt.Println("Hex:", addr.Hex())
	fmt.Println("Base58:", addr.String())
	return nil
}
