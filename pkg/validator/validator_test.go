package validator

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bogatykh/smartid-go-client/pkg/smartid"
)

func TestAuthenticationResponseValidator_Validate(t *testing.T) {
	t.Run("a trusted response yields the authenticated identity", func(t *testing.T) {
		chain := newTestChain(t)
		validator := NewWithTrustedCertificates(chain.caCertificate)

		identity, err := validator.Validate(chain.response(t))

		require.NoError(t, err)
		assert.Equal(t, "TESTNUMBER", identity.GivenName)
		assert.Equal(t, "OK", identity.Surname)
		assert.Equal(t, "30303039914", identity.IdentityNumber)
		assert.Equal(t, "EE", identity.Country)
		assert.Equal(t, "PNOEE-30303039914-MOCK-Q", identity.DocumentNumber)
		assert.Same(t, chain.certificate, identity.AuthCertificate)
		require.NotNil(t, identity.DateOfBirth)
		assert.Equal(t, "1903-03-03", identity.DateOfBirth.Format("2006-01-02"))
	})

	t.Run("a non-OK end result is rejected first", func(t *testing.T) {
		chain := newTestChain(t)
		validator := NewWithTrustedCertificates(chain.caCertificate)

		response := chain.response(t)
		response.EndResult = "USER_REFUSED"
		_, err := validator.Validate(response)
		assert.EqualError(t, err, "unprocessable response: end result code 'USER_REFUSED'")
	})

	t.Run("a missing signature is rejected", func(t *testing.T) {
		chain := newTestChain(t)
		validator := NewWithTrustedCertificates(chain.caCertificate)

		response := chain.response(t)
		response.SignatureValueBase64 = ""
		_, err := validator.Validate(response)
		assert.EqualError(t, err, "signature was not present in the response")
	})

	t.Run("a missing certificate is rejected", func(t *testing.T) {
		chain := newTestChain(t)
		validator := NewWithTrustedCertificates(chain.caCertificate)

		response := chain.response(t)
		response.Certificate = nil
		_, err := validator.Validate(response)
		assert.EqualError(t, err, "certificate was not present in the response")
	})

	t.Run("a signature by some other key is rejected", func(t *testing.T) {
		chain := newTestChain(t)
		other := newTestChain(t)
		validator := NewWithTrustedCertificates(chain.caCertificate)

		response := chain.response(t)
		response.SignatureValueBase64 = other.response(t).SignatureValueBase64
		_, err := validator.Validate(response)
		assert.EqualError(t, err, "signature verification failed")
	})

	t.Run("a signature over a different hash is rejected", func(t *testing.T) {
		chain := newTestChain(t)
		validator := NewWithTrustedCertificates(chain.caCertificate)

		response := chain.response(t)
		tampered := make([]byte, 32)
		response.SignedHashBase64 = base64.StdEncoding.EncodeToString(tampered)
		_, err := validator.Validate(response)
		assert.EqualError(t, err, "signature verification failed")
	})

	t.Run("an expired certificate is rejected", func(t *testing.T) {
		chain := newTestChain(t, withValidity(time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour)))
		validator := NewWithTrustedCertificates(chain.caCertificate)

		_, err := validator.Validate(chain.response(t))
		assert.EqualError(t, err, "signer's certificate has expired")
	})

	t.Run("a certificate from an unknown authority is rejected", func(t *testing.T) {
		chain := newTestChain(t)
		unrelated := newTestChain(t)
		validator := NewWithTrustedCertificates(unrelated.caCertificate)

		_, err := validator.Validate(chain.response(t))
		assert.EqualError(t, err, "signer's certificate is not trusted")
	})

	t.Run("an empty trust store rejects everything", func(t *testing.T) {
		chain := newTestChain(t)
		_, err := New().Validate(chain.response(t))
		assert.EqualError(t, err, "signer's certificate is not trusted")
	})

	t.Run("an ADVANCED certificate does not satisfy a QUALIFIED request", func(t *testing.T) {
		chain := newTestChain(t)
		validator := NewWithTrustedCertificates(chain.caCertificate)

		response := chain.response(t)
		response.CertificateLevel = smartid.CertificateLevelAdvanced
		response.RequestedCertificateLevel = smartid.CertificateLevelQualified
		_, err := validator.Validate(response)

		assert.True(t, errors.Is(err, smartid.ErrCertificateLevelMismatch))
		// a level mismatch is a policy outcome, not a protocol violation
		assert.False(t, errors.Is(err, smartid.NewUnprocessableResponseError("x")))
	})

	t.Run("a QUALIFIED certificate satisfies an ADVANCED request", func(t *testing.T) {
		chain := newTestChain(t)
		validator := NewWithTrustedCertificates(chain.caCertificate)

		response := chain.response(t)
		response.RequestedCertificateLevel = smartid.CertificateLevelAdvanced
		_, err := validator.Validate(response)
		assert.NoError(t, err)
	})

	t.Run("a non-RSA public key is rejected", func(t *testing.T) {
		chain := newTestChain(t)
		validator := NewWithTrustedCertificates(chain.caCertificate)

		ecdsaKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)
		template := &x509.Certificate{
			SerialNumber: big.NewInt(3),
			Subject:      defaultSubject(),
			NotBefore:    time.Now().Add(-time.Hour),
			NotAfter:     time.Now().Add(time.Hour),
		}
		ecdsaDER, err := x509.CreateCertificate(rand.Reader, template, template, &ecdsaKey.PublicKey, ecdsaKey)
		require.NoError(t, err)
		ecdsaCertificate, err := x509.ParseCertificate(ecdsaDER)
		require.NoError(t, err)

		response := chain.response(t)
		response.Certificate = ecdsaCertificate
		_, err = validator.Validate(response)
		assert.EqualError(t, err, "signer's certificate does not hold an RSA public key")
	})
}

func TestAuthenticationResponseValidator_TrustStore(t *testing.T) {
	t.Run("certificates can be added from PEM data", func(t *testing.T) {
		chain := newTestChain(t)
		pemData := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: chain.caCertificate.Raw})

		validator := New()
		require.NoError(t, validator.AddTrustedCertificatesFromPEM(pemData))
		require.Len(t, validator.TrustedCertificates(), 1)

		_, err := validator.Validate(chain.response(t))
		assert.NoError(t, err)
	})

	t.Run("PEM data without certificates is an error", func(t *testing.T) {
		err := New().AddTrustedCertificatesFromPEM([]byte("not pem at all"))
		assert.EqualError(t, err, "no certificates found in PEM data")
	})

	t.Run("non-certificate blocks are skipped", func(t *testing.T) {
		chain := newTestChain(t)
		pemData := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: []byte{1, 2, 3}})
		pemData = append(pemData, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: chain.caCertificate.Raw})...)

		validator := New()
		require.NoError(t, validator.AddTrustedCertificatesFromPEM(pemData))
		assert.Len(t, validator.TrustedCertificates(), 1)
	})

	t.Run("clearing the store withdraws trust", func(t *testing.T) {
		chain := newTestChain(t)
		validator := NewWithTrustedCertificates(chain.caCertificate)

		_, err := validator.Validate(chain.response(t))
		require.NoError(t, err)

		validator.ClearTrustedCertificates()
		_, err = validator.Validate(chain.response(t))
		assert.EqualError(t, err, "signer's certificate is not trusted")
	})

	t.Run("the returned store is a copy", func(t *testing.T) {
		chain := newTestChain(t)
		validator := NewWithTrustedCertificates(chain.caCertificate)

		certificates := validator.TrustedCertificates()
		certificates[0] = nil
		assert.NotNil(t, validator.TrustedCertificates()[0])
	})
}
