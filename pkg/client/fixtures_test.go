package client

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bogatykh/smartid-go-client/pkg/smartid"
)

// completedTestStatus builds the terminal status a successful session ends in,
// carrying a freshly generated certificate.
func completedTestStatus(t *testing.T) *smartid.SessionStatus {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 1024)
	require.NoError(t, err)
	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "TESTNUMBER,OK", SerialNumber: "PNOEE-31111111111"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)

	return &smartid.SessionStatus{
		State: "COMPLETE",
		Result: &smartid.SessionResult{
			EndResult:      "OK",
			DocumentNumber: documentNumber,
		},
		Cert: &smartid.SessionCertificate{
			Value:            base64.StdEncoding.EncodeToString(der),
			CertificateLevel: "QUALIFIED",
		},
		Signature: &smartid.SessionSignature{
			Value:     base64.StdEncoding.EncodeToString([]byte("signature bytes")),
			Algorithm: "sha512WithRSAEncryption",
		},
		InteractionFlowUsed: "displayTextAndPIN",
	}
}
