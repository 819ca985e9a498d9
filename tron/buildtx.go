package tron

import (
	"fmt"
	"math/big"
	"net/url"

	"github.com/tourze/tron-api/abi"
	"github.com/tourze/tron-api/address"
	"github.com/tourze/tron-api/common"
	"github.com/tourze/tron-api/common/hexutil"
	"github.com/tourze/tron-api/params"
)

// TxOptions carries the transaction metadata that does not depend on the
// operation kind. Zero fields are defaulted: timestamp to the current
// time, expiration to timestamp plus the default lifetime. Reference
// block fields may be stamped later from gateway data, before signing.
type TxOptions struct {
	RefBlockBytes hexutil.Bytes
	RefBlockHash  hexutil.Bytes
	Timestamp     int64 // unix milliseconds
	Expiration    int64 // unix milliseconds
}

// AssetIssueArgs describes a token issuance. Supply and the
// trx_num:num pricing ratio use the canonical arbitrary precision
// representation and are range checked once, on build.
type AssetIssueArgs struct {
	Owner                   string
	Name                    string
	Abbr                    string
	TotalSupply             *big.Int
	TrxNum                  *big.Int
	Num                     *big.Int
	Precision               int32
	SaleStart               int64 // unix milliseconds
	SaleEnd                 int64 // unix milliseconds
	Description             string
	URL                     string
	FreeAssetNetLimit       int64
	PublicFreeAssetNetLimit int64
}

// BuildTransfer builds an unsigned transfer of amount sun.
func BuildTransfer(from, to string, amount *big.Int, opts *TxOptions) (*Transaction, error) {
	owner, err := buildAddress("from", from)
	if err != nil {
		return nil, err
	}
	toAddr, err := buildAddress("to", to)
	if err != nil {
		return nil, err
	}
	if owner == toAddr {
		return nil, invalidf("to: transfer to the owning account %v", toAddr.String())
	}
	sun, err := amountToSun("amount", amount, true)
	if err != nil {
		return nil, err
	}
	value := &TransferContract{OwnerAddress: owner, ToAddress: toAddr, Amount: sun}
	return newTransaction(TransferContractType, value, 0, opts)
}

// BuildTokenTransfer builds an unsigned transfer of an issued token.
func BuildTokenTransfer(from, to, tokenID string, amount *big.Int, opts *TxOptions) (*Transaction, error) {
	owner, err := buildAddress("from", from)
	if err != nil {
		return nil, err
	}
	toAddr, err := buildAddress("to", to)
	if err != nil {
		return nil, err
	}
	if owner == toAddr {
		return nil, invalidf("to: token transfer to the owning account %v", toAddr.String())
	}
	if err := checkTokenID(tokenID); err != nil {
		return nil, err
	}
	sun, err := amountToSun("amount", amount, false)
	if err != nil {
		return nil, err
	}
	value := &TransferAssetContract{
		AssetName:    tokenID,
		OwnerAddress: owner,
		ToAddress:    toAddr,
		Amount:       sun,
	}
	return newTransaction(TransferAssetContractType, value, 0, opts)
}

// BuildAssetIssue builds an unsigned token issuance.
func BuildAssetIssue(args *AssetIssueArgs, opts *TxOptions) (*Transaction, error) {
	owner, err := buildAddress("owner", args.Owner)
	if err != nil {
		return nil, err
	}
	if args.Name == "" {
		return nil, invalidf("name: must not be empty")
	}
	if len(args.Name) > params.MaxTokenNameLength {
		return nil, invalidf("name: longer than %v bytes", params.MaxTokenNameLength)
	}
	if args.Abbr == "" {
		return nil, invalidf("abbr: must not be empty")
	}
	if len(args.Abbr) > params.MaxTokenNameLength {
		return nil, invalidf("abbr: longer than %v bytes", params.MaxTokenNameLength)
	}
	supply, err := amountToSun("total supply", args.TotalSupply, false)
	if err != nil {
		return nil, err
	}
	trxNum, err := amountToSun("trx num", args.TrxNum, false)
	if err != nil {
		return nil, err
	}
	num, err := amountToSun("num", args.Num, false)
	if err != nil {
		return nil, err
	}
	if args.Precision < 0 || args.Precision > 6 {
		return nil, invalidf("precision: %v out of range [0, 6]", args.Precision)
	}
	now := common.NowMilli()
	if args.SaleStart <= now {
		return nil, invalidf("sale start: %v is not in the future", args.SaleStart)
	}
	if args.SaleEnd <= args.SaleStart {
		return nil, invalidf("sale end: %v is not after sale start %v", args.SaleEnd, args.SaleStart)
	}
	if err := checkTokenURL(args.URL); err != nil {
		return nil, err
	}
	value := &AssetIssueContract{
		OwnerAddress:            owner,
		Name:                    args.Name,
		Abbr:                    args.Abbr,
		TotalSupply:             supply,
		TrxNum:                  trxNum,
		Num:                     num,
		Precision:               args.Precision,
		StartTime:               args.SaleStart,
		EndTime:                 args.SaleEnd,
		Description:             args.Description,
		URL:                     args.URL,
		FreeAssetNetLimit:       args.FreeAssetNetLimit,
		PublicFreeAssetNetLimit: args.PublicFreeAssetNetLimit,
	}
	return newTransaction(AssetIssueContractType, value, 0, opts)
}

// BuildParticipateAssetIssue builds an unsigned purchase of amount of an
// issued token from its issuer.
func BuildParticipateAssetIssue(from, issuer, tokenID string, amount *big.Int, opts *TxOptions) (*Transaction, error) {
	owner, err := buildAddress("from", from)
	if err != nil {
		return nil, err
	}
	toAddr, err := buildAddress("issuer", issuer)
	if err != nil {
		return nil, err
	}
	if owner == toAddr {
		return nil, invalidf("issuer: participating in own issuance %v", toAddr.String())
	}
	if err := checkTokenID(tokenID); err != nil {
		return nil, err
	}
	sun, err := amountToSun("amount", amount, false)
	if err != nil {
		return nil, err
	}
	value := &ParticipateAssetIssueContract{
		OwnerAddress: owner,
		ToAddress:    toAddr,
		AssetName:    tokenID,
		Amount:       sun,
	}
	return newTransaction(ParticipateAssetIssueContractType, value, 0, opts)
}

// BuildFreezeBalance builds an unsigned stake of amount sun for a
// resource over durationDays.
func BuildFreezeBalance(owner string, amount *big.Int, durationDays int64, resource Resource, opts *TxOptions) (*Transaction, error) {
	ownerAddr, err := buildAddress("owner", owner)
	if err != nil {
		return nil, err
	}
	sun, err := amountToSun("amount", amount, false)
	if err != nil {
		return nil, err
	}
	if durationDays < params.MinFreezeDuration {
		return nil, invalidf("duration: %v days below the minimum of %v", durationDays, params.MinFreezeDuration)
	}
	if !IsValidResource(resource) {
		return nil, invalidf("resource: %q is not %v or %v", resource, ResourceBandwidth, ResourceEnergy)
	}
	value := &FreezeBalanceContract{
		OwnerAddress:   ownerAddr,
		FrozenBalance:  sun,
		FrozenDuration: durationDays,
		Resource:       resource,
	}
	return newTransaction(FreezeBalanceContractType, value, 0, opts)
}

// BuildUnfreezeBalance builds an unsigned release of a resource stake.
func BuildUnfreezeBalance(owner string, resource Resource, opts *TxOptions) (*Transaction, error) {
	ownerAddr, err := buildAddress("owner", owner)
	if err != nil {
		return nil, err
	}
	if !IsValidResource(resource) {
		return nil, invalidf("resource: %q is not %v or %v", resource, ResourceBandwidth, ResourceEnergy)
	}
	value := &UnfreezeBalanceContract{OwnerAddress: ownerAddr, Resource: resource}
	return newTransaction(UnfreezeBalanceContractType, value, 0, opts)
}

// BuildTriggerContract builds an unsigned state-changing invocation of a
// contract function. Calldata is the selector hash plus the packed
// arguments; the fee limit is checked against the network ceiling before
// any encoding happens.
func BuildTriggerContract(caller, contract string, fn *abi.Function, args []interface{},
	feeLimit int64, callValue *big.Int, opts *TxOptions) (*Transaction, error) {
	value, err := buildTriggerValue(caller, contract, fn, args, callValue)
	if err != nil {
		return nil, err
	}
	if feeLimit <= 0 {
		return nil, invalidf("fee limit: %v is not positive", feeLimit)
	}
	if feeLimit > params.MaxFeeLimit {
		return nil, invalidf("fee limit: %v above the network ceiling %v", feeLimit, params.MaxFeeLimit)
	}
	return newTransaction(TriggerSmartContractType, value, feeLimit, opts)
}

// BuildConstantCall builds the payload of a read-only invocation. The
// result is not a transaction: it carries no fee fields and is meant for
// the gateway's constant call endpoint.
func BuildConstantCall(caller, contract string, fn *abi.Function, args []interface{}) (*TriggerSmartContract, error) {
	return buildTriggerValue(caller, contract, fn, args, nil)
}

func buildTriggerValue(caller, contract string, fn *abi.Function, args []interface{}, callValue *big.Int) (*TriggerSmartContract, error) {
	ownerAddr, err := buildAddress("caller", caller)
	if err != nil {
		return nil, err
	}
	contractAddr, err := buildAddress("contract", contract)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, invalidf("function: must not be nil")
	}
	sun := int64(0)
	if callValue != nil && callValue.Sign() != 0 {
		if !fn.IsPayable() {
			return nil, invalidf("call value: function %q is not payable", fn.Name)
		}
		sun, err = amountToSun("call value", callValue, true)
		if err != nil {
			return nil, err
		}
	}
	data, err := abi.PackWithSelector(fn, args...)
	if err != nil {
		return nil, err
	}
	return &TriggerSmartContract{
		OwnerAddress:    ownerAddr,
		ContractAddress: contractAddr,
		CallValue:       sun,
		Data:            data,
	}, nil
}

// newTransaction assembles the raw data around a single operation payload
// and stamps the transaction identifier over its canonical encoding.
func newTransaction(ctype ContractType, value interface{}, feeLimit int64, opts *TxOptions) (*Transaction, error) {
	if opts == nil {
		opts = &TxOptions{}
	}
	timestamp := opts.Timestamp
	if timestamp == 0 {
		timestamp = common.NowMilli()
	}
	expiration := opts.Expiration
	if expiration == 0 {
		expiration = timestamp + params.DefaultTxLifetime
	}
	if expiration <= timestamp {
		return nil, invalidf("expiration: %v is not after timestamp %v", expiration, timestamp)
	}
	raw := &RawData{
		Contract: []*Contract{{
			Parameter: &Parameter{Value: value, TypeURL: typeURLPrefix + string(ctype)},
			Type:      ctype,
		}},
		RefBlockBytes: opts.RefBlockBytes,
		RefBlockHash:  opts.RefBlockHash,
		Expiration:    expiration,
		FeeLimit:      feeLimit,
		Timestamp:     timestamp,
	}
	tx := &Transaction{RawData: raw}
	if err := tx.StampTxID(); err != nil {
		return nil, err
	}
	return tx, nil
}

// StampTxID recomputes the transaction identifier over the current body.
// It must not be called once signatures exist, since they cover the
// identifier's preimage.
func (tx *Transaction) StampTxID() error {
	if tx.IsSigned() {
		return ErrAlreadySigned
	}
	if tx.RawData == nil || len(tx.RawData.Contract) == 0 {
		return ErrMissingBody
	}
	hash, err := CalcTxHash(tx.RawData)
	if err != nil {
		return err
	}
	tx.TxID = hash.Bytes()
	return nil
}

func buildAddress(field, input string) (address.Address, error) {
	a, err := address.ToAddress(input)
	if err != nil {
		return a, fmt.Errorf("%s: %w", field, err)
	}
	return a, nil
}

// amountToSun converts the canonical arbitrary precision amount into the
// network's signed 64 bit minor units, exactly once.
func amountToSun(field string, amount *big.Int, allowZero bool) (int64, error) {
	if amount == nil {
		return 0, invalidf("%s: missing value", field)
	}
	if amount.Sign() < 0 {
		return 0, invalidf("%s: %v is negative", field, amount)
	}
	if !allowZero && amount.Sign() == 0 {
		return 0, invalidf("%s: must be positive", field)
	}
	sun, ok := common.BigToInt64(amount)
	if !ok {
		return 0, invalidf("%s: %v overflows 64 bit minor units", field, amount)
	}
	return sun, nil
}

func checkTokenID(tokenID string) error {
	if tokenID == "" {
		return invalidf("token id: must not be empty")
	}
	for _, c := range []byte(tokenID) {
		if c < '0' || c > '9' {
			return invalidf("token id: %q is not numeric", tokenID)
		}
	}
	return nil
}

func checkTokenURL(rawURL string) error {
	if rawURL == "" {
		return invalidf("url: must not be empty")
	}
	if len(rawURL) > params.MaxTokenURLLength {
		return invalidf("url: longer than %v bytes", params.MaxTokenURLLength)
	}
	u, err := url.ParseRequestURI(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalidf("url: %q is not a well formed URL", rawURL)
	}
	return nil
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}
