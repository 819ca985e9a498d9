// Package client talks to the network's HTTP gateways. Every request is
// tried against the configured endpoints in order until one answers.
package client

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tourze/tron-api/log"
	"github.com/tourze/tron-api/params"
	"github.com/tourze/tron-api/tron"
)

// client errors
var (
	// ErrGatewayUnreachable is returned when every configured endpoint failed.
	ErrGatewayUnreachable = errors.New("no gateway endpoint answered")

	// ErrMalformedBlock is returned for a block response missing the
	// header or carrying a short block id.
	ErrMalformedBlock = errors.New("malformed block")
)

const defaultTimeoutSeconds = 60

// Client queries full node gateways over their HTTP API.
type Client struct {
	endpoints []string
	rc        *resty.Client
}

// NewClient builds a client from a gateway config.
func NewClient(gateway *params.GatewayConfig) *Client {
	timeout := gateway.TimeoutSeconds
	if timeout == 0 {
		timeout = defaultTimeoutSeconds
	}
	rc := resty.New().SetTimeout(time.Duration(timeout) * time.Second)
	endpoints := make([]string, 0, len(gateway.APIAddress))
	for _, endpoint := range gateway.APIAddress {
		endpoints = append(endpoints, strings.TrimSuffix(endpoint, "/"))
	}
	return &Client{endpoints: endpoints, rc: rc}
}

// post sends body to path on each endpoint in turn and decodes the first
// successful answer into result.
func (c *Client) post(path string, body, result interface{}) error {
	for _, endpoint := range c.endpoints {
		endpointURL, err := url.Parse(endpoint)
		if err != nil {
			continue
		}
		resp, err := c.rc.R().SetBody(body).Post(endpointURL.String() + path)
		if err != nil || resp.StatusCode() != 200 {
			status := 0
			if resp != nil {
				status = resp.StatusCode()
			}
			log.Warn("gateway request error", "endpoint", endpoint, "path", path, "status", status, "err", err)
			continue
		}
		err = json.Unmarshal(resp.Body(), result)
		if err != nil {
			log.Warn("gateway response unmarshal error", "endpoint", endpoint, "path", path, "err", err)
			continue
		}
		return nil
	}
	return ErrGatewayUnreachable
}

// GetNowBlock returns the latest block of the first answering gateway.
func (c *Client) GetNowBlock() (*Block, error) {
	var block Block
	err := c.post("/wallet/getnowblock", struct{}{}, &block)
	if err != nil {
		return nil, err
	}
	if !wellFormedBlock(&block) {
		return nil, fmt.Errorf("%w: from gateway", ErrMalformedBlock)
	}
	return &block, nil
}

// GetAccount returns the account at a hex mainnet address.
func (c *Client) GetAccount(addressHex string) (*Account, error) {
	var account Account
	err := c.post("/wallet/getaccount", map[string]string{"address": addressHex}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountBalance returns the native coin balance of an account in sun.
func (c *Client) GetAccountBalance(addressHex string) (*big.Int, error) {
	account, err := c.GetAccount(addressHex)
	if err != nil {
		return nil, err
	}
	return big.NewInt(account.Balance), nil
}

// BroadcastTransaction submits a signed transaction.
func (c *Client) BroadcastTransaction(tx *tron.Transaction) (*BroadcastResult, error) {
	if !tx.IsSigned() {
		return nil, tron.ErrMissingSignature
	}
	var result BroadcastResult
	err := c.post("/wallet/broadcasttransaction", tx, &result)
	if err != nil {
		return nil, err
	}
	if !result.Result {
		log.Warn("broadcast rejected", "code", result.Code, "message", string(result.Message))
	}
	return &result, nil
}

// FillRefBlock stamps the transaction's reference block fields from the
// given block and recomputes the identifier. It must happen before
// signing, since the reference fields are part of the signed preimage.
func FillRefBlock(tx *tron.Transaction, block *Block) error {
	if tx.IsSigned() {
		return tron.ErrAlreadySigned
	}
	if tx.RawData == nil || len(tx.RawData.Contract) == 0 {
		return tron.ErrMissingBody
	}
	if !wellFormedBlock(block) {
		return ErrMalformedBlock
	}
	var height [8]byte
	binary.BigEndian.PutUint64(height[:], uint64(block.BlockHeader.RawData.Number))
	tx.RawData.RefBlockBytes = height[6:8]
	tx.RawData.RefBlockHash = block.BlockID[8:16]
	return tx.StampTxID()
}

func wellFormedBlock(block *Block) bool {
	return block != nil && block.BlockHeader != nil && block.BlockHeader.RawData != nil &&
		len(block.BlockID) == 32
}
