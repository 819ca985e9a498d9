package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tourze/tron-api/address"
	"github.com/tourze/tron-api/client"
	"github.com/tourze/tron-api/cmd/utils"
	"github.com/tourze/tron-api/common"
	"github.com/tourze/tron-api/crypto"
	"github.com/tourze/tron-api/log"
	"github.com/tourze/tron-api/params"
	"github.com/tourze/tron-api/tron"
)

var (
	privKeyFlag = &cli.StringFlag{
		Name:  "privkey",
		Usage: "private key hex of the sending account",
	}
	toFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "receiver address (hex or base58)",
	}
	amountFlag = &cli.StringFlag{
		Name:  "amount",
		Usage: "amount to send in sun",
	}
	tokenFlag = &cli.StringFlag{
		Name:  "token",
		Usage: "issued token id (empty for the native coin)",
	}
	memoFlag = &cli.StringFlag{
		Name:  "memo",
		Usage: "memo to attach to the transaction",
	}
	dryRunFlag = &cli.BoolFlag{
		Name:  "dryrun",
		Usage: "build and sign without broadcasting",
	}

	sendTransferCommand = &cli.Command{
		Action:    sendTransfer,
		Name:      "sendtx",
		Usage:     "build, sign and broadcast a transfer",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			privKeyFlag,
			toFlag,
			amountFlag,
			tokenFlag,
			memoFlag,
			dryRunFlag,
			utils.GatewayFlag,
		},
	}
)

func sendTransfer(ctx *cli.Context) error {
	utils.SetLogger(ctx)

	key, err := crypto.HexToECDSA(ctx.String(privKeyFlag.Name))
	if err != nil {
		return fmt.Errorf("wrong privkey: %w", err)
	}
	from := address.PubkeyToAddress(key.PublicKey)

	amount, err := common.GetBigIntFromStr(ctx.String(amountFlag.Name))
	if err != nil {
		return fmt.Errorf("wrong amount: %w", err)
	}

	dryRun := ctx.Bool(dryRunFlag.Name)
	var gateway *client.Client
	if !dryRun {
		apiAddress := ctx.StringSlice(utils.GatewayFlag.Name)
		if len(apiAddress) == 0 {
			return fmt.Errorf("miss gateway argument")
		}
		gateway = client.NewClient(&params.GatewayConfig{APIAddress: apiAddress})
	}

	var tx *tron.Transaction
	if token := ctx.String(tokenFlag.Name); token != "" {
		tx, err = tron.BuildTokenTransfer(from.Hex(), ctx.String(toFlag.Name), token, amount, nil)
	} else {
		tx, err = tron.BuildTransfer(from.Hex(), ctx.String(toFlag.Name), amount, nil)
	}
	if err != nil {
		return err
	}

	if gateway != nil {
		block, err := gateway.GetNowBlock()
		if err != nil {
			return err
		}
		if err = client.FillRefBlock(tx, block); err != nil {
			return err
		}
	}

	if memo := ctx.String(memoFlag.Name); memo != "" {
		_, err = tron.SignTransactionWithMemo(tx, key, []byte(memo))
	} else {
		_, err = tron.SignTransaction(tx, key)
	}
	if err != nil {
		return err
	}

	bs, _ := json.MarshalIndent(tx, "", "  ")
	fmt.Println(string(bs))

	if dryRun {
		log.Info("dryrun, skip broadcast", "txid", tx.TxID.String())
		return nil
	}
	result, err := gateway.BroadcastTransaction(tx)
	if err != nil {
		return err
	}
	if !result.Result {
		return fmt.Errorf("broadcast rejected: %v %v", result.Code, string(result.Message))
	}
	log.Info("broadcast success", "txid", tx.TxID.String())
	return nil
}
