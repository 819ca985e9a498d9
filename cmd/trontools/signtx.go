package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tourze/tron-api/cmd/utils"
	"github.com/tourze/tron-api/crypto"
	"github.com/tourze/tron-api/log"
	"github.com/tourze/tron-api/tron"
)

var (
	txFileFlag = &cli.StringFlag{
		Name:  "txfile",
		Usage: "path of the unsigned transaction JSON file",
	}
	multiSignFlag = &cli.BoolFlag{
		Name:  "multisign",
		Usage: "append a signature to an already signed transaction",
	}

	signTxCommand = &cli.Command{
		Action:    signTx,
		Name:      "signtx",
		Usage:     "sign a transaction JSON file offline",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			txFileFlag,
			privKeyFlag,
			memoFlag,
			multiSignFlag,
		},
	}
)

func signTx(ctx *cli.Context) error {
	utils.SetLogger(ctx)

	key, err := crypto.HexToECDSA(ctx.String(privKeyFlag.Name))
	if err != nil {
		return fmt.Errorf("wrong privkey: %w", err)
	}

	txFile := ctx.String(txFileFlag.Name)
	if txFile == "" {
		return fmt.Errorf("miss txfile argument")
	}
	bs, err := os.ReadFile(txFile)
	if err != nil {
		return err
	}
	tx := &tron.Transaction{}
	if err = json.Unmarshal(bs, tx); err != nil {
		return fmt.Errorf("wrong transaction file: %w", err)
	}

	switch {
	case ctx.Bool(multiSignFlag.Name):
		_, err = tron.MultiSignTransaction(tx, key)
	case ctx.String(memoFlag.Name) != "":
		_, err = tron.SignTransactionWithMemo(tx, key, []byte(ctx.String(memoFlag.Name)))
	default:
		_, err = tron.SignTransaction(tx, key)
	}
	if err != nil {
		return err
	}

	signed, _ := json.MarshalIndent(tx, "", "  ")
	fmt.Println(string(signed))
	log.Info("sign success", "txid", tx.TxID.String(), "signatures", len(tx.Signature))
	return nil
}
