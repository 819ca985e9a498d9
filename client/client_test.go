package client

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourze/tron-api/abi"
	"github.com/tourze/tron-api/common"
	"github.com/tourze/tron-api/common/hexutil"
	"github.com/tourze/tron-api/params"
	"github.com/tourze/tron-api/tron"
)

const (
	ownerHex    = "417e5f4552091a69125d5dfcb7b8c2659029395bdf"
	contractHex = "41111722d6b3a730ebe07652ed2b3770947b3de2e2"
)

func testServer(t *testing.T, handlers map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp, ok := handlers[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testClient(endpoints ...string) *Client {
	return NewClient(&params.GatewayConfig{APIAddress: endpoints, TimeoutSeconds: 5})
}

func TestGetNowBlock(t *testing.T) {
	blockID := make([]byte, 32)
	copy(blockID[8:], common.Hex2Bytes("1122334455667788"))
	srv := testServer(t, map[string]interface{}{
		"/wallet/getnowblock": &Block{
			BlockID: blockID,
			BlockHeader: &BlockHeader{RawData: &BlockHeaderRaw{
				Number:    33836543,
				Timestamp: 1700000000000,
			}},
		},
	})

	block, err := testClient(srv.URL).GetNowBlock()
	require.NoError(t, err)
	assert.Equal(t, int64(33836543), block.BlockHeader.RawData.Number)
	assert.Len(t, []byte(block.BlockID), 32)
}

func TestGetNowBlockFailover(t *testing.T) {
	srv := testServer(t, map[string]interface{}{
		"/wallet/getnowblock": &Block{
			BlockID:     make(hexutil.Bytes, 32),
			BlockHeader: &BlockHeader{RawData: &BlockHeaderRaw{Number: 1}},
		},
	})

	// dead and non-200 endpoints are skipped, the live one answers
	notFound := testServer(t, nil)
	block, err := testClient("http://127.0.0.1:1", notFound.URL, srv.URL).GetNowBlock()
	require.NoError(t, err)
	assert.Equal(t, int64(1), block.BlockHeader.RawData.Number)

	_, err = testClient("http://127.0.0.1:1").GetNowBlock()
	assert.Equal(t, ErrGatewayUnreachable, err)
}

func TestGetAccount(t *testing.T) {
	srv := testServer(t, map[string]interface{}{
		"/wallet/getaccount": &Account{
			Address: common.Hex2Bytes(ownerHex),
			Balance: 2500000,
			AssetV2: []*AccountAsset{{Key: "1000001", Value: 42}},
		},
	})

	account, err := testClient(srv.URL).GetAccount(ownerHex)
	require.NoError(t, err)
	assert.Equal(t, int64(2500000), account.Balance)
	assert.Equal(t, "1000001", account.AssetV2[0].Key)

	balance, err := testClient(srv.URL).GetAccountBalance(ownerHex)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Cmp(big.NewInt(2500000)))
}

func TestFillRefBlock(t *testing.T) {
	tx, err := tron.BuildTransfer(ownerHex, contractHex, big.NewInt(1), nil)
	require.NoError(t, err)
	oldTxID := tx.TxID.String()

	blockID := make(hexutil.Bytes, 32)
	copy(blockID[8:], common.Hex2Bytes("aabbccddeeff0011"))
	block := &Block{
		BlockID:     blockID,
		BlockHeader: &BlockHeader{RawData: &BlockHeaderRaw{Number: 0x0102abcd}},
	}

	require.NoError(t, FillRefBlock(tx, block))
	assert.Equal(t, "abcd", tx.RawData.RefBlockBytes.String(), "low two bytes of the height")
	assert.Equal(t, "aabbccddeeff0011", tx.RawData.RefBlockHash.String(), "bytes 8..16 of the block id")
	assert.NotEqual(t, oldTxID, tx.TxID.String(), "identifier covers the reference fields")

	tx.Signature = append(tx.Signature, make(hexutil.Bytes, 65))
	assert.Equal(t, tron.ErrAlreadySigned, FillRefBlock(tx, block))

	assert.Equal(t, tron.ErrMissingBody, FillRefBlock(&tron.Transaction{}, block))
}

func TestFillRefBlockMalformed(t *testing.T) {
	tx, err := tron.BuildTransfer(ownerHex, contractHex, big.NewInt(1), nil)
	require.NoError(t, err)

	// blocks from outside GetNowBlock fail cleanly instead of panicking
	assert.Equal(t, ErrMalformedBlock, FillRefBlock(tx, nil))
	assert.Equal(t, ErrMalformedBlock, FillRefBlock(tx, &Block{}))
	assert.Equal(t, ErrMalformedBlock, FillRefBlock(tx, &Block{
		BlockID:     make(hexutil.Bytes, 8),
		BlockHeader: &BlockHeader{RawData: &BlockHeaderRaw{Number: 1}},
	}), "short block id")
	assert.Equal(t, ErrMalformedBlock, FillRefBlock(tx, &Block{
		BlockID:     make(hexutil.Bytes, 32),
		BlockHeader: &BlockHeader{},
	}), "missing raw header")
	assert.False(t, tx.IsSigned())
}

func TestBroadcastTransaction(t *testing.T) {
	srv := testServer(t, map[string]interface{}{
		"/wallet/broadcasttransaction": &BroadcastResult{Result: true, TxID: "ab"},
	})

	tx, err := tron.BuildTransfer(ownerHex, contractHex, big.NewInt(1), nil)
	require.NoError(t, err)

	_, err = testClient(srv.URL).BroadcastTransaction(tx)
	assert.Equal(t, tron.ErrMissingSignature, err, "unsigned transactions are rejected locally")

	tx.Signature = append(tx.Signature, make(hexutil.Bytes, 65))
	result, err := testClient(srv.URL).BroadcastTransaction(tx)
	require.NoError(t, err)
	assert.True(t, result.Result)
}

func constantTestFunction(t *testing.T) *abi.Function {
	t.Helper()
	funcs, err := abi.Parse([]byte(`[
		{"type":"function","name":"balanceOf","stateMutability":"view",
		 "inputs":[{"name":"owner","type":"address"}],
		 "outputs":[{"name":"","type":"uint256"}]}
	]`))
	require.NoError(t, err)
	fn, err := abi.FindFunction(funcs, "balanceOf")
	require.NoError(t, err)
	return fn
}

func TestTriggerConstantContract(t *testing.T) {
	fn := constantTestFunction(t)
	word := make([]byte, abi.WordLength)
	word[abi.WordLength-1] = 0x64 // 100
	srv := testServer(t, map[string]interface{}{
		"/wallet/triggerconstantcontract": &triggerResponse{
			Result:         &triggerResult{Result: true},
			ConstantResult: []hexutil.Bytes{word},
			EnergyUsed:     540,
		},
	})

	call, err := tron.BuildConstantCall(ownerHex, contractHex, fn, []interface{}{ownerHex})
	require.NoError(t, err)

	result, err := testClient(srv.URL).TriggerConstantContract(call, fn)
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Empty(t, result.Reason)
	assert.Equal(t, int64(540), result.EnergyUsed)
	require.Len(t, result.Outputs, 1)
	assert.Equal(t, 0, result.Outputs[0].(*big.Int).Cmp(big.NewInt(100)))
}

func TestNormalizeCallResultFailure(t *testing.T) {
	fn := constantTestFunction(t)

	result, err := normalizeCallResult(&triggerResponse{
		Result: &triggerResult{Result: false, Message: []byte("REVERT opcode executed")},
	}, fn)
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Nil(t, result.Outputs)
	assert.Equal(t, "REVERT opcode executed", result.Reason)

	result, err = normalizeCallResult(&triggerResponse{
		Result: &triggerResult{Result: false, Code: "CONTRACT_VALIDATE_ERROR"},
	}, fn)
	require.NoError(t, err)
	assert.Equal(t, "CONTRACT_VALIDATE_ERROR", result.Reason)

	result, err = normalizeCallResult(&triggerResponse{}, fn)
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.NotEmpty(t, result.Reason)
}
