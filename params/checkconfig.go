package params

import (
	"errors"
	"fmt"
	"net/url"
)

// CheckConfig check config
func CheckConfig() (err error) {
	config := GetConfig()
	if config.Identifier == "" {
		return errors.New("must config non empty 'Identifier'")
	}
	if config.Gateway == nil {
		return errors.New("must config 'Gateway'")
	}
	err = config.Gateway.CheckConfig()
	if err != nil {
		return err
	}
	if config.Tx != nil {
		err = config.Tx.CheckConfig()
		if err != nil {
			return err
		}
	}
	return nil
}

// CheckConfig check gateway config
func (c *GatewayConfig) CheckConfig() error {
	if len(c.APIAddress) == 0 {
		return errors.New("gateway must config 'APIAddress'")
	}
	for _, apiAddress := range c.APIAddress {
		u, err := url.Parse(apiAddress)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("gateway api address %v is not a well formed URL", apiAddress)
		}
	}
	return nil
}

// CheckConfig check tx config
func (c *TxConfig) CheckConfig() error {
	if c.DefaultFeeLimit < 0 {
		return fmt.Errorf("tx default fee limit %v is negative", c.DefaultFeeLimit)
	}
	if c.DefaultFeeLimit > MaxFeeLimit {
		return fmt.Errorf("tx default fee limit %v above the network ceiling %v", c.DefaultFeeLimit, MaxFeeLimit)
	}
	if c.TxLifetime < 0 {
		return fmt.Errorf("tx lifetime %v is negative", c.TxLifetime)
	}
	return nil
}
