package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tourze/tron-api/address"
	"github.com/tourze/tron-api/cmd/utils"
	"github.com/tourze/tron-api/common"
	"github.com/tourze/tron-api/crypto"
)

var (
	keygenCommand = &cli.Command{
		Action:    keygen,
		Name:      "keygen",
		Usage:     "generate a new key pair with its address",
		ArgsUsage: " ",
	}
)

func keygen(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	key, err := crypto.GenerateKey()
	if err != nil {
		return err
	}
	addr := address.PubkeyToAddress(key.PublicKey)
	fmt.Println("PrivateKey:", common.Bytes2Hex(crypto.FromECDSA(key)))
	fmt.Println("PublicKey:", common.Bytes2Hex(crypto.FromECDSAPub(&key.PublicKey)))
	fmt.Println("Address:", addr.String())
	fmt.Println("AddressHex:", addr.Hex())
	return nil
}
