// Package tron assembles, validates and signs the network's transaction
// payloads. Builders are pure: every call validates its inputs, assembles a
// fresh transaction and stamps its identifier; nothing is cached between
// calls.
package tron

import (
	"encoding/json"
	"fmt"

	"github.com/tourze/tron-api/address"
	"github.com/tourze/tron-api/common"
	"github.com/tourze/tron-api/common/hexutil"
	"github.com/tourze/tron-api/crypto"
)

// ContractType tags the operation carried by a transaction.
type ContractType string

// supported operation kinds
const (
	TransferContractType              ContractType = "TransferContract"
	TransferAssetContractType         ContractType = "TransferAssetContract"
	AssetIssueContractType            ContractType = "AssetIssueContract"
	ParticipateAssetIssueContractType ContractType = "ParticipateAssetIssueContract"
	FreezeBalanceContractType         ContractType = "FreezeBalanceContract"
	UnfreezeBalanceContractType       ContractType = "UnfreezeBalanceContract"
	TriggerSmartContractType          ContractType = "TriggerSmartContract"
)

// typeURLPrefix is the namespace of contract payload type tags.
const typeURLPrefix = "type.googleapis.com/protocol."

// Resource is a freezable network capacity.
type Resource string

// freezable resources
const (
	ResourceBandwidth Resource = "BANDWIDTH"
	ResourceEnergy    Resource = "ENERGY"
)

// IsValidResource reports whether r names a freezable resource.
func IsValidResource(r Resource) bool {
	return r == ResourceBandwidth || r == ResourceEnergy
}

// Transaction is an operation payload with its identifier and signatures.
// The identifier is the 256 bit digest of the canonical raw data encoding;
// signatures are appended by the signing pipeline and never replaced.
type Transaction struct {
	TxID      hexutil.Bytes   `json:"txID,omitempty"`
	RawData   *RawData        `json:"raw_data,omitempty"`
	Signature []hexutil.Bytes `json:"signature,omitempty"`
}

// RawData is the signed-over body of a transaction.
type RawData struct {
	Contract      []*Contract   `json:"contract"`
	RefBlockBytes hexutil.Bytes `json:"ref_block_bytes,omitempty"`
	RefBlockHash  hexutil.Bytes `json:"ref_block_hash,omitempty"`
	Expiration    int64         `json:"expiration,omitempty"`
	Data          hexutil.Bytes `json:"data,omitempty"`
	FeeLimit      int64         `json:"fee_limit,omitempty"`
	Timestamp     int64         `json:"timestamp,omitempty"`
}

// Contract wraps one typed operation payload.
type Contract struct {
	Parameter *Parameter   `json:"parameter"`
	Type      ContractType `json:"type"`
}

// UnmarshalJSON decodes the payload into the struct matching the contract
// type. Decoding into the typed struct keeps the canonical encoding stable
// across a marshal/unmarshal round trip; a generic map would re-marshal
// its keys in sorted order and change the signed bytes.
func (c *Contract) UnmarshalJSON(data []byte) error {
	var raw struct {
		Parameter *struct {
			Value   json.RawMessage `json:"value"`
			TypeURL string          `json:"type_url"`
		} `json:"parameter"`
		Type ContractType `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Type = raw.Type
	if raw.Parameter == nil {
		c.Parameter = nil
		return nil
	}
	value, err := newContractValue(raw.Type)
	if err != nil {
		return err
	}
	if len(raw.Parameter.Value) > 0 {
		if err := json.Unmarshal(raw.Parameter.Value, value); err != nil {
			return err
		}
	}
	c.Parameter = &Parameter{Value: value, TypeURL: raw.Parameter.TypeURL}
	return nil
}

func newContractValue(ctype ContractType) (interface{}, error) {
	switch ctype {
	case TransferContractType:
		return &TransferContract{}, nil
	case TransferAssetContractType:
		return &TransferAssetContract{}, nil
	case AssetIssueContractType:
		return &AssetIssueContract{}, nil
	case ParticipateAssetIssueContractType:
		return &ParticipateAssetIssueContract{}, nil
	case FreezeBalanceContractType:
		return &FreezeBalanceContract{}, nil
	case UnfreezeBalanceContractType:
		return &UnfreezeBalanceContract{}, nil
	case TriggerSmartContractType:
		return &TriggerSmartContract{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownContractType, ctype)
}

// Parameter carries the operation payload with its type tag.
type Parameter struct {
	Value   interface{} `json:"value"`
	TypeURL string      `json:"type_url"`
}

// CanonicalBytes returns the deterministic encoding of the raw data that
// the transaction identifier and signatures cover.
func (r *RawData) CanonicalBytes() ([]byte, error) {
	return json.Marshal(r)
}

// CalcTxHash computes the transaction identifier over the canonical
// raw data encoding.
func CalcTxHash(raw *RawData) (common.Hash, error) {
	canonical, err := raw.CanonicalBytes()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(canonical), nil
}

// IsSigned reports whether the transaction already carries signatures.
func (tx *Transaction) IsSigned() bool {
	return len(tx.Signature) > 0
}

// GetContract returns the single operation payload of the transaction,
// or nil if the body is absent or empty.
func (tx *Transaction) GetContract() *Contract {
	if tx.RawData == nil || len(tx.RawData.Contract) == 0 {
		return nil
	}
	return tx.RawData.Contract[0]
}

// TransferContract moves amount sun between two accounts.
type TransferContract struct {
	OwnerAddress address.Address `json:"owner_address"`
	ToAddress    address.Address `json:"to_address"`
	Amount       int64           `json:"amount"`
}

// TransferAssetContract moves amount of an issued token between accounts.
type TransferAssetContract struct {
	AssetName    string          `json:"asset_name"`
	OwnerAddress address.Address `json:"owner_address"`
	ToAddress    address.Address `json:"to_address"`
	Amount       int64           `json:"amount"`
}

// AssetIssueContract declares a new token with its sale window and the
// trx_num:num exchange ratio.
type AssetIssueContract struct {
	OwnerAddress            address.Address `json:"owner_address"`
	Name                    string          `json:"name"`
	Abbr                    string          `json:"abbr"`
	TotalSupply             int64           `json:"total_supply"`
	TrxNum                  int64           `json:"trx_num"`
	Num                     int64           `json:"num"`
	Precision               int32           `json:"precision,omitempty"`
	StartTime               int64           `json:"start_time"`
	EndTime                 int64           `json:"end_time"`
	Description             string          `json:"description,omitempty"`
	URL                     string          `json:"url"`
	FreeAssetNetLimit       int64           `json:"free_asset_net_limit,omitempty"`
	PublicFreeAssetNetLimit int64           `json:"public_free_asset_net_limit,omitempty"`
}

// ParticipateAssetIssueContract purchases amount of an issued token from
// its issuer during the sale window.
type ParticipateAssetIssueContract struct {
	OwnerAddress address.Address `json:"owner_address"`
	ToAddress    address.Address `json:"to_address"`
	AssetName    string          `json:"asset_name"`
	Amount       int64           `json:"amount"`
}

// FreezeBalanceContract stakes balance for a resource over a duration
// in days.
type FreezeBalanceContract struct {
	OwnerAddress   address.Address `json:"owner_address"`
	FrozenBalance  int64           `json:"frozen_balance"`
	FrozenDuration int64           `json:"frozen_duration"`
	Resource       Resource        `json:"resource"`
}

// UnfreezeBalanceContract releases a previously frozen resource stake.
type UnfreezeBalanceContract struct {
	OwnerAddress address.Address `json:"owner_address"`
	Resource     Resource        `json:"resource"`
}

// TriggerSmartContract invokes a contract function with encoded calldata.
// The fee limit of a state-changing trigger lives in the raw data, not
// here; a read-only call carries no fee fields at all.
type TriggerSmartContract struct {
	OwnerAddress    address.Address `json:"owner_address"`
	ContractAddress address.Address `json:"contract_address"`
	CallValue       int64           `json:"call_value,omitempty"`
	Data            hexutil.Bytes   `json:"data"`
}
