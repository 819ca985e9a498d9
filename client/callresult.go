package client

import (
	"github.com/tourze/tron-api/abi"
	"github.com/tourze/tron-api/tron"
)

// CallResult is the normalized outcome of a constant contract call.
// Succeeded selects which half is meaningful: Outputs on success,
// Reason on failure. Callers never have to inspect gateway specific
// code fields.
type CallResult struct {
	Succeeded  bool
	Outputs    []interface{}
	Reason     string
	EnergyUsed int64
}

// TriggerConstantContract runs a read-only call and decodes its return
// data against the function's outputs.
func (c *Client) TriggerConstantContract(call *tron.TriggerSmartContract, fn *abi.Function) (*CallResult, error) {
	var resp triggerResponse
	err := c.post("/wallet/triggerconstantcontract", map[string]string{
		"owner_address":    call.OwnerAddress.Hex(),
		"contract_address": call.ContractAddress.Hex(),
		"data":             call.Data.String(),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return normalizeCallResult(&resp, fn)
}

// normalizeCallResult folds a gateway response into the tagged result.
// Gateways report failures in band, so a rejected call is a failed
// CallResult, not an error; errors are reserved for transport and
// decoding problems.
func normalizeCallResult(resp *triggerResponse, fn *abi.Function) (*CallResult, error) {
	result := &CallResult{EnergyUsed: resp.EnergyUsed}
	if resp.Result == nil || !resp.Result.Result {
		result.Reason = failureReason(resp)
		return result, nil
	}
	result.Succeeded = true
	if len(resp.ConstantResult) == 0 || len(fn.Outputs) == 0 {
		return result, nil
	}
	outputs, err := abi.Unpack(fn, resp.ConstantResult[0])
	if err != nil {
		return nil, err
	}
	result.Outputs = outputs
	return result, nil
}

func failureReason(resp *triggerResponse) string {
	if resp.Result != nil && len(resp.Result.Message) > 0 {
		return string(resp.Result.Message)
	}
	if resp.Result != nil && resp.Result.Code != "" {
		return resp.Result.Code
	}
	return "call rejected by gateway"
}
