package smartid

import (
	"encoding/base64"
	"fmt"
)

// SignableHash is a precomputed hash together with the algorithm that
// produced it. It is complete when the hash type is known and the value
// length matches the algorithm's output length.
type SignableHash struct {
	Value    []byte
	HashType HashType
}

// NewSignableHashFromBase64 decodes a standard base64 encoded hash value.
func NewSignableHashFromBase64(encoded string, hashType HashType) (SignableHash, error) {
	value, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return SignableHash{}, fmt.Errorf("could not base64-decode hash value: %w", err)
	}
	return SignableHash{Value: value, HashType: hashType}, nil
}

// ValueBase64 returns the hash value in standard base64 encoding, the form
// the wire protocol carries it in.
func (h SignableHash) ValueBase64() string {
	return base64.StdEncoding.EncodeToString(h.Value)
}

// IsValid reports whether the hash is complete enough to be sent.
func (h SignableHash) IsValid() bool {
	return h.HashType.Length() > 0 && len(h.Value) == h.HashType.Length()
}

// VerificationCode returns the 4-digit code to display to the user for this
// hash. Show it before or while the user's device shows its own.
func (h SignableHash) VerificationCode() string {
	return VerificationCode(h.Value)
}

// SignableData is raw data that still needs to be hashed before signing.
// HashType may be left empty; operations default it to SHA512.
type SignableData struct {
	Data     []byte
	HashType HashType
}

// CalculateHash digests the data with the configured hash type.
func (d SignableData) CalculateHash() (SignableHash, error) {
	hashType := d.HashType
	if hashType == "" {
		hashType = SHA512
	}
	value, err := ComputeDigest(d.Data, hashType)
	if err != nil {
		return SignableHash{}, err
	}
	return SignableHash{Value: value, HashType: hashType}, nil
}
