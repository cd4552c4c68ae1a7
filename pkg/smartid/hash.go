/*
 * Smart-ID client for Go
 * Copyright (C) 2021. The smartid-go-client authors
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 */

package smartid

import (
	"crypto"
	"crypto/sha256"
	_ "crypto/sha512" // register SHA-384 and SHA-512 for crypto.Hash.New
	"encoding/binary"
	"fmt"
	"strings"
)

// HashType names the hash algorithm used to produce a signable hash. The
// string value is what goes over the wire in the hashType request field.
type HashType string

const (
	SHA256 HashType = "SHA256"
	SHA384 HashType = "SHA384"
	SHA512 HashType = "SHA512"
)

// Length returns the digest size in bytes, or 0 for an unknown hash type.
func (h HashType) Length() int {
	switch HashType(strings.ToUpper(string(h))) {
	case SHA256:
		return 32
	case SHA384:
		return 48
	case SHA512:
		return 64
	}
	return 0
}

// CryptoHash maps the hash type onto the platform hash identifier used for
// digest computation and signature verification. Returns 0 for unknown types.
func (h HashType) CryptoHash() crypto.Hash {
	switch HashType(strings.ToUpper(string(h))) {
	case SHA256:
		return crypto.SHA256
	case SHA384:
		return crypto.SHA384
	case SHA512:
		return crypto.SHA512
	}
	return 0
}

// ComputeDigest hashes data with the given hash type. An unset or unknown
// hash type makes the response built from the digest unusable, so it is
// reported as an unprocessable response rather than a configuration error.
func ComputeDigest(data []byte, hashType HashType) ([]byte, error) {
	cryptoHash := hashType.CryptoHash()
	if cryptoHash == 0 {
		return nil, NewUnprocessableResponseError(fmt.Sprintf("unknown hash type '%s'", hashType))
	}
	hasher := cryptoHash.New()
	hasher.Write(data)
	return hasher.Sum(nil), nil
}

// VerificationCode derives the 4-digit code the user's device displays during
// signing and authentication. It always runs SHA-256 over the given hash, no
// matter which algorithm produced it: the last two bytes of that digest are
// read as a big-endian 16-bit integer, rendered as decimal and zero-padded to
// four digits. This is a visual confirmation aid, not a security boundary.
func VerificationCode(hash []byte) string {
	digest := sha256.Sum256(hash)
	code := binary.BigEndian.Uint16(digest[len(digest)-2:])
	padded := fmt.Sprintf("%04d", code)
	return padded[len(padded)-4:]
}
