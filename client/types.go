package client

import (
	"github.com/tourze/tron-api/common/hexutil"
)

// Block is the subset of a gateway block response needed for
// transaction reference stamping.
type Block struct {
	BlockID     hexutil.Bytes `json:"blockID"`
	BlockHeader *BlockHeader  `json:"block_header"`
}

// BlockHeader wraps the raw header of a block.
type BlockHeader struct {
	RawData *BlockHeaderRaw `json:"raw_data"`
}

// BlockHeaderRaw is the raw header of a block.
type BlockHeaderRaw struct {
	Number     int64         `json:"number"`
	ParentHash hexutil.Bytes `json:"parentHash,omitempty"`
	Timestamp  int64         `json:"timestamp,omitempty"`
}

// Account is a gateway account response.
type Account struct {
	Address hexutil.Bytes   `json:"address"`
	Balance int64           `json:"balance"`
	AssetV2 []*AccountAsset `json:"assetV2,omitempty"`
}

// AccountAsset is one issued token position of an account.
type AccountAsset struct {
	Key   string `json:"key"`
	Value int64  `json:"value"`
}

// BroadcastResult is a gateway broadcast response.
type BroadcastResult struct {
	Result  bool          `json:"result"`
	Code    string        `json:"code,omitempty"`
	TxID    string        `json:"txid,omitempty"`
	Message hexutil.Bytes `json:"message,omitempty"`
}

// triggerResponse is a gateway constant call response.
type triggerResponse struct {
	Result         *triggerResult  `json:"result"`
	ConstantResult []hexutil.Bytes `json:"constant_result,omitempty"`
	EnergyUsed     int64           `json:"energy_used,omitempty"`
}

type triggerResult struct {
	Result  bool          `json:"result"`
	Code    string        `json:"code,omitempty"`
	Message hexutil.Bytes `json:"message,omitempty"`
}
