package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"

	"github.com/tourze/tron-api/common"
)

// SignatureLength is the byte length of a recoverable signature:
// r (32 bytes) || s (32 bytes) || recovery id (1 byte).
const SignatureLength = 65

// signing errors
var (
	ErrMissingKey       = errors.New("missing private key")
	ErrInvalidDigest    = errors.New("invalid signing digest")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidPubkey    = errors.New("invalid public key")
	ErrInvalidPrivkey   = errors.New("invalid private key")
)

// S256 returns the secp256k1 curve.
func S256() elliptic.Curve {
	return btcec.S256()
}

// Sign calculates a recoverable ECDSA signature over a 32 byte digest.
// The nonce is deterministic (RFC6979) and s is in the lower half of the
// curve order, so identical (digest, key) pairs produce identical
// signatures.
func Sign(digest []byte, prv *ecdsa.PrivateKey) ([]byte, error) {
	if prv == nil || prv.D == nil {
		return nil, ErrMissingKey
	}
	if len(digest) != DigestLength {
		return nil, fmt.Errorf("%w: require %v bytes, have %v", ErrInvalidDigest, DigestLength, len(digest))
	}
	compact, err := btcec.SignCompact(btcec.S256(), (*btcec.PrivateKey)(prv), digest, false)
	if err != nil {
		return nil, err
	}
	// compact form carries the recovery header first, rearrange to r||s||v
	sig := make([]byte, SignatureLength)
	copy(sig, compact[1:])
	sig[64] = compact[0] - 27
	return sig, nil
}

// RecoverPubkey returns the public key that produced the given r||s||v
// signature over digest.
func RecoverPubkey(digest, sig []byte) (*ecdsa.PublicKey, error) {
	if len(digest) != DigestLength {
		return nil, fmt.Errorf("%w: require %v bytes, have %v", ErrInvalidDigest, DigestLength, len(digest))
	}
	if len(sig) != SignatureLength {
		return nil, fmt.Errorf("%w: require %v bytes, have %v", ErrInvalidSignature, SignatureLength, len(sig))
	}
	if sig[64] >= 4 {
		return nil, fmt.Errorf("%w: recovery id %v out of range", ErrInvalidSignature, sig[64])
	}
	compact := make([]byte, SignatureLength)
	compact[0] = sig[64] + 27
	copy(compact[1:], sig[:64])
	pub, _, err := btcec.RecoverCompact(btcec.S256(), compact, digest)
	if err != nil {
		return nil, err
	}
	return pub.ToECDSA(), nil
}

// VerifySignature reports whether the r||s part of sig is a valid
// signature of digest by the given public key.
func VerifySignature(pub *ecdsa.PublicKey, digest, sig []byte) bool {
	if pub == nil || len(sig) < 64 {
		return false
	}
	r := new(big.Int).SetBytes(sig[:32])
	s := new(big.Int).SetBytes(sig[32:64])
	return ecdsa.Verify(pub, digest, r, s)
}

// GenerateKey generates a fresh secp256k1 private key.
func GenerateKey() (*ecdsa.PrivateKey, error) {
	prv, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return nil, err
	}
	return prv.ToECDSA(), nil
}

// HexToECDSA parses a 32 byte hex encoded secp256k1 private key.
func HexToECDSA(hexkey string) (*ecdsa.PrivateKey, error) {
	b, err := hex.DecodeString(hexkey)
	if err != nil {
		return nil, fmt.Errorf("%w: not a hex string", ErrInvalidPrivkey)
	}
	return ToECDSA(b)
}

// ToECDSA creates a private key from its raw 32 byte scalar.
func ToECDSA(d []byte) (*ecdsa.PrivateKey, error) {
	if len(d) != 32 {
		return nil, fmt.Errorf("%w: require 32 bytes, have %v", ErrInvalidPrivkey, len(d))
	}
	k := new(big.Int).SetBytes(d)
	if k.Sign() == 0 || k.Cmp(btcec.S256().N) >= 0 {
		return nil, fmt.Errorf("%w: scalar out of range", ErrInvalidPrivkey)
	}
	prv, _ := btcec.PrivKeyFromBytes(btcec.S256(), d)
	return prv.ToECDSA(), nil
}

// FromECDSA exports a private key into its raw 32 byte scalar.
func FromECDSA(prv *ecdsa.PrivateKey) []byte {
	if prv == nil {
		return nil
	}
	return common.LeftPadBytes(prv.D.Bytes(), 32)
}

// FromECDSAPub exports a public key in the uncompressed 65 byte form.
func FromECDSAPub(pub *ecdsa.PublicKey) []byte {
	if pub == nil || pub.X == nil || pub.Y == nil {
		return nil
	}
	return (*btcec.PublicKey)(pub).SerializeUncompressed()
}

// UnmarshalPubkey converts a serialized (compressed or uncompressed)
// public key to an ecdsa.PublicKey.
func UnmarshalPubkey(pub []byte) (*ecdsa.PublicKey, error) {
	key, err := btcec.ParsePubKey(pub, btcec.S256())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPubkey, err)
	}
	return key.ToECDSA(), nil
}
