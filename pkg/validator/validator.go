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

package validator

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bogatykh/smartid-go-client/logging"
	"github.com/bogatykh/smartid-go-client/pkg/smartid"
)

// AuthenticationResponseValidator decides whether a completed authentication
// can be trusted. The trust anchors are caller configuration: reads are
// concurrent with in-flight validations, writes are expected to happen
// outside of them.
type AuthenticationResponseValidator struct {
	mu                  sync.RWMutex
	trustedCertificates []*x509.Certificate
}

// New returns a validator with an empty trust store.
func New() *AuthenticationResponseValidator {
	return &AuthenticationResponseValidator{}
}

// NewWithTrustedCertificates returns a validator anchored on the given
// certificates.
func NewWithTrustedCertificates(certificates ...*x509.Certificate) *AuthenticationResponseValidator {
	return &AuthenticationResponseValidator{trustedCertificates: certificates}
}

// AddTrustedCertificate adds root or intermediate CA certificates to the
// trust store.
func (v *AuthenticationResponseValidator) AddTrustedCertificate(certificates ...*x509.Certificate) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.trustedCertificates = append(v.trustedCertificates, certificates...)
}

// AddTrustedCertificatesFromPEM parses all CERTIFICATE blocks in the given
// PEM data and adds them to the trust store.
func (v *AuthenticationResponseValidator) AddTrustedCertificatesFromPEM(pemBytes []byte) error {
	var parsed []*x509.Certificate
	for {
		var block *pem.Block
		block, pemBytes = pem.Decode(pemBytes)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		certificate, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return fmt.Errorf("could not parse trusted certificate: %w", err)
		}
		parsed = append(parsed, certificate)
	}
	if len(parsed) == 0 {
		return fmt.Errorf("no certificates found in PEM data")
	}
	v.AddTrustedCertificate(parsed...)
	return nil
}

// ClearTrustedCertificates empties the trust store.
func (v *AuthenticationResponseValidator) ClearTrustedCertificates() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.trustedCertificates = nil
}

// TrustedCertificates returns a copy of the trust store.
func (v *AuthenticationResponseValidator) TrustedCertificates() []*x509.Certificate {
	v.mu.RLock()
	defer v.mu.RUnlock()
	certificates := make([]*x509.Certificate, len(v.trustedCertificates))
	copy(certificates, v.trustedCertificates)
	return certificates
}

// Validate runs the trust checks in order and stops at the first failure:
// end result, signature presence, certificate presence, signature over the
// submitted hash, certificate expiry, trust chain, certificate level. On
// success it extracts the authenticated identity from the certificate.
func (v *AuthenticationResponseValidator) Validate(response *smartid.AuthenticationResponse) (*AuthenticationIdentity, error) {
	if !strings.EqualFold(response.EndResult, smartid.EndResultOK) {
		return nil, smartid.NewUnprocessableResponseError(fmt.Sprintf("unprocessable response: end result code '%s'", response.EndResult))
	}
	if response.SignatureValueBase64 == "" {
		return nil, smartid.NewUnprocessableResponseError("signature was not present in the response")
	}
	if response.Certificate == nil {
		return nil, smartid.NewUnprocessableResponseError("certificate was not present in the response")
	}
	if err := v.verifySignature(response); err != nil {
		return nil, err
	}
	if err := v.verifyCertificateExpiry(response.Certificate); err != nil {
		return nil, err
	}
	if err := v.verifyCertificateTrusted(response.Certificate); err != nil {
		return nil, err
	}
	if !response.CertificateLevel.IsAtLeast(response.RequestedCertificateLevel) {
		return nil, smartid.ErrCertificateLevelMismatch
	}
	return identityFromResponse(response)
}

func (v *AuthenticationResponseValidator) verifySignature(response *smartid.AuthenticationResponse) error {
	hash, err := response.SignedHash()
	if err != nil {
		return err
	}
	signature, err := response.SignatureValue()
	if err != nil {
		return err
	}
	cryptoHash := response.HashType.CryptoHash()
	if cryptoHash == 0 {
		return smartid.NewUnprocessableResponseError(fmt.Sprintf("unknown hash type '%s'", response.HashType))
	}
	publicKey, ok := response.Certificate.PublicKey.(*rsa.PublicKey)
	if !ok {
		return smartid.NewUnprocessableResponseError("signer's certificate does not hold an RSA public key")
	}
	if err := rsa.VerifyPKCS1v15(publicKey, cryptoHash, hash, signature); err != nil {
		logging.Log().WithError(err).Debug("authentication signature did not verify")
		return smartid.NewUnprocessableResponseError("signature verification failed")
	}
	return nil
}

func (v *AuthenticationResponseValidator) verifyCertificateExpiry(certificate *x509.Certificate) error {
	if time.Now().After(certificate.NotAfter) {
		return smartid.NewUnprocessableResponseError("signer's certificate has expired")
	}
	return nil
}

// verifyCertificateTrusted builds a chain from the signer's certificate to
// the configured anchors. Trust is anchored purely by presence in the store:
// revocation is not checked and unknown intermediates are acceptable as long
// as a configured certificate terminates the chain.
func (v *AuthenticationResponseValidator) verifyCertificateTrusted(certificate *x509.Certificate) error {
	v.mu.RLock()
	defer v.mu.RUnlock()

	roots := x509.NewCertPool()
	intermediates := x509.NewCertPool()
	for _, trusted := range v.trustedCertificates {
		roots.AddCert(trusted)
		intermediates.AddCert(trusted)
	}

	_, err := certificate.Verify(x509.VerifyOptions{
		Roots:         roots,
		Intermediates: intermediates,
		CurrentTime:   time.Now(),
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	})
	if err != nil {
		logging.Log().WithError(err).Debug("signer's certificate chain did not verify")
		return smartid.NewUnprocessableResponseError("signer's certificate is not trusted")
	}
	return nil
}
