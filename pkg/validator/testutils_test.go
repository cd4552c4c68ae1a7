package validator

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/base64"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bogatykh/smartid-go-client/pkg/smartid"
)

const testHashBase64 = "jsflWgpkVcWOyICotnVn5lazcXdaIWvcvNOWTYPceYQ="

// testChain is a freshly generated CA with one end user certificate issued by
// it, shaped like the certificates the identity service hands out.
type testChain struct {
	caCertificate *x509.Certificate
	certificate   *x509.Certificate
	key           *rsa.PrivateKey
}

type chainOption func(*x509.Certificate)

func withSubject(subject pkix.Name) chainOption {
	return func(template *x509.Certificate) {
		template.Subject = subject
	}
}

func withValidity(notBefore, notAfter time.Time) chainOption {
	return func(template *x509.Certificate) {
		template.NotBefore = notBefore
		template.NotAfter = notAfter
	}
}

func withExtraExtensions(extensions ...pkix.Extension) chainOption {
	return func(template *x509.Certificate) {
		template.ExtraExtensions = append(template.ExtraExtensions, extensions...)
	}
}

func defaultSubject() pkix.Name {
	return pkix.Name{
		CommonName:   "TESTNUMBER,OK",
		SerialNumber: "PNOEE-30303039914",
		Country:      []string{"EE"},
		ExtraNames: []pkix.AttributeTypeAndValue{
			{Type: oidGivenName, Value: "TESTNUMBER"},
			{Type: oidSurname, Value: "OK"},
		},
	}
}

func newTestChain(t *testing.T, options ...chainOption) *testChain {
	t.Helper()

	caKey, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	caTemplate := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "TEST of EID-SK 2016"},
		NotBefore:             time.Now().Add(-24 * time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
	caDER, err := x509.CreateCertificate(rand.Reader, caTemplate, caTemplate, &caKey.PublicKey, caKey)
	require.NoError(t, err)
	caCertificate, err := x509.ParseCertificate(caDER)
	require.NoError(t, err)

	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	template := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject:      defaultSubject(),
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	for _, option := range options {
		option(template)
	}
	der, err := x509.CreateCertificate(rand.Reader, template, caCertificate, &key.PublicKey, caKey)
	require.NoError(t, err)
	certificate, err := x509.ParseCertificate(der)
	require.NoError(t, err)

	return &testChain{caCertificate: caCertificate, certificate: certificate, key: key}
}

// response builds the authentication response a completed session would
// produce: the chain's key signs the fixture hash.
func (c *testChain) response(t *testing.T) *smartid.AuthenticationResponse {
	t.Helper()

	hash, err := base64.StdEncoding.DecodeString(testHashBase64)
	require.NoError(t, err)
	signature, err := rsa.SignPKCS1v15(rand.Reader, c.key, crypto.SHA256, hash)
	require.NoError(t, err)

	return &smartid.AuthenticationResponse{
		EndResult:                 "OK",
		SignedHashBase64:          testHashBase64,
		HashType:                  smartid.SHA256,
		SignatureValueBase64:      base64.StdEncoding.EncodeToString(signature),
		AlgorithmName:             "sha256WithRSAEncryption",
		Certificate:               c.certificate,
		CertificateLevel:          smartid.CertificateLevelQualified,
		RequestedCertificateLevel: smartid.CertificateLevelQualified,
		DocumentNumber:            "PNOEE-30303039914-MOCK-Q",
	}
}

// dateOfBirthExtension encodes the subject directory attributes extension
// carrying the given birth date as a GeneralizedTime.
func dateOfBirthExtension(t *testing.T, dateOfBirth time.Time) pkix.Extension {
	t.Helper()

	encoded, err := asn1.MarshalWithParams(dateOfBirth, "generalized")
	require.NoError(t, err)
	value, err := asn1.Marshal([]subjectDirectoryAttribute{{
		Type:   oidDateOfBirth,
		Values: []asn1.RawValue{{FullBytes: encoded}},
	}})
	require.NoError(t, err)
	return pkix.Extension{Id: oidSubjectDirectoryAttributes, Value: value}
}
