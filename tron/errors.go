package tron

import "errors"

// construction and signing errors
var (
	// ErrInvalidArgument covers every operation specific validation
	// failure of the transaction builders. The wrapped message names the
	// offending field and the violated constraint.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrAlreadySigned       = errors.New("transaction is already signed")
	ErrMissingSignature    = errors.New("transaction is not signed")
	ErrMissingTxID         = errors.New("transaction has no identifier")
	ErrMissingBody         = errors.New("transaction has no body")
	ErrTxHashMismatch      = errors.New("transaction identifier does not match body")
	ErrUnknownContractType = errors.New("unknown contract type")
)
