package tron

import (
	"bytes"
	"crypto/ecdsa"

	"github.com/tourze/tron-api/address"
	"github.com/tourze/tron-api/crypto"
)

// SignTransaction signs an unsigned transaction in place and returns it.
// The transaction identifier is recomputed over the canonical body and
// must match the stamped one, so a body mutated after building is
// rejected instead of signed.
func SignTransaction(tx *Transaction, key *ecdsa.PrivateKey) (*Transaction, error) {
	if tx.IsSigned() {
		return nil, ErrAlreadySigned
	}
	return appendSignature(tx, key)
}

// SignTransactionWithMemo attaches memo to the transaction body, restamps
// the identifier and signs. The memo becomes part of the signed preimage,
// so it can only be attached before the first signature.
func SignTransactionWithMemo(tx *Transaction, key *ecdsa.PrivateKey, memo []byte) (*Transaction, error) {
	if tx.IsSigned() {
		return nil, ErrAlreadySigned
	}
	if tx.RawData == nil || len(tx.RawData.Contract) == 0 {
		return nil, ErrMissingBody
	}
	tx.RawData.Data = memo
	if err := tx.StampTxID(); err != nil {
		return nil, err
	}
	return appendSignature(tx, key)
}

// MultiSignTransaction appends a further signature to a transaction that
// may already carry some. Every signer covers the same identifier, which
// is still revalidated against the body on each call.
func MultiSignTransaction(tx *Transaction, key *ecdsa.PrivateKey) (*Transaction, error) {
	return appendSignature(tx, key)
}

func appendSignature(tx *Transaction, key *ecdsa.PrivateKey) (*Transaction, error) {
	if key == nil {
		return nil, crypto.ErrMissingKey
	}
	if tx.RawData == nil || len(tx.RawData.Contract) == 0 {
		return nil, ErrMissingBody
	}
	if len(tx.TxID) == 0 {
		return nil, ErrMissingTxID
	}
	hash, err := CalcTxHash(tx.RawData)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(tx.TxID, hash.Bytes()) {
		return nil, ErrTxHashMismatch
	}
	sig, err := crypto.Sign(tx.TxID, key)
	if err != nil {
		return nil, err
	}
	tx.Signature = append(tx.Signature, sig)
	return tx, nil
}

// RecoverSigner returns the address bound to the idx'th signature.
func RecoverSigner(tx *Transaction, idx int) (address.Address, error) {
	var zero address.Address
	if idx < 0 || idx >= len(tx.Signature) {
		return zero, crypto.ErrInvalidSignature
	}
	if len(tx.TxID) == 0 {
		return zero, ErrMissingTxID
	}
	pub, err := crypto.RecoverPubkey(tx.TxID, tx.Signature[idx])
	if err != nil {
		return zero, err
	}
	return address.PubkeyToAddress(*pub), nil
}
