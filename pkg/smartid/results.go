package smartid

import (
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"strings"
)

// CertificateResult is the outcome of a successful certificate choice.
type CertificateResult struct {
	Certificate      *x509.Certificate
	CertificateLevel CertificateLevel
	DocumentNumber   string
	DeviceIPAddress  string
}

// SignatureResult is the outcome of a successful signing operation.
type SignatureResult struct {
	Value               []byte
	AlgorithmName       string
	DocumentNumber      string
	InteractionFlowUsed string
	DeviceIPAddress     string
}

// ValueBase64 returns the signature value as carried on the wire.
func (r *SignatureResult) ValueBase64() string {
	return base64.StdEncoding.EncodeToString(r.Value)
}

// AuthenticationResponse is the outcome of a completed authentication. It
// has not been trusted yet: pass it to the response validator to verify the
// signature, the certificate chain and the certificate level, and to extract
// the authenticated identity.
type AuthenticationResponse struct {
	EndResult                 string
	SignedHashBase64          string
	HashType                  HashType
	SignatureValueBase64      string
	AlgorithmName             string
	Certificate               *x509.Certificate
	CertificateLevel          CertificateLevel
	RequestedCertificateLevel CertificateLevel
	DocumentNumber            string
	InteractionFlowUsed       string
	DeviceIPAddress           string
	IgnoredProperties         []string
}

// SignatureValue returns the decoded signature bytes.
func (r *AuthenticationResponse) SignatureValue() ([]byte, error) {
	value, err := base64.StdEncoding.DecodeString(r.SignatureValueBase64)
	if err != nil {
		return nil, NewUnprocessableResponseError(fmt.Sprintf("could not base64-decode signature value: %s", err))
	}
	return value, nil
}

// SignedHash returns the decoded hash the user's app signed.
func (r *AuthenticationResponse) SignedHash() ([]byte, error) {
	value, err := base64.StdEncoding.DecodeString(r.SignedHashBase64)
	if err != nil {
		return nil, NewUnprocessableResponseError(fmt.Sprintf("could not base64-decode signed hash: %s", err))
	}
	return value, nil
}

// CertificateResultFrom interprets a terminal certificate choice status.
func CertificateResultFrom(status *SessionStatus) (*CertificateResult, error) {
	if err := checkCompleted(status); err != nil {
		return nil, err
	}
	if status.Cert == nil || status.Cert.Value == "" {
		return nil, NewUnprocessableResponseError("certificate was not present in the session status")
	}
	if status.Result.DocumentNumber == "" {
		return nil, NewUnprocessableResponseError("document number was not present in the session status")
	}
	certificate, err := parseCertificate(status.Cert.Value)
	if err != nil {
		return nil, err
	}
	return &CertificateResult{
		Certificate:      certificate,
		CertificateLevel: CertificateLevel(status.Cert.CertificateLevel),
		DocumentNumber:   status.Result.DocumentNumber,
		DeviceIPAddress:  status.DeviceIPAddress,
	}, nil
}

// SignatureResultFrom interprets a terminal signing status.
func SignatureResultFrom(status *SessionStatus) (*SignatureResult, error) {
	if err := checkCompleted(status); err != nil {
		return nil, err
	}
	if status.Signature == nil || status.Signature.Value == "" {
		return nil, NewUnprocessableResponseError("signature was not present in the session status")
	}
	value, err := base64.StdEncoding.DecodeString(status.Signature.Value)
	if err != nil {
		return nil, NewUnprocessableResponseError(fmt.Sprintf("could not base64-decode signature value: %s", err))
	}
	return &SignatureResult{
		Value:               value,
		AlgorithmName:       status.Signature.Algorithm,
		DocumentNumber:      status.Result.DocumentNumber,
		InteractionFlowUsed: status.InteractionFlowUsed,
		DeviceIPAddress:     status.DeviceIPAddress,
	}, nil
}

// AuthenticationResponseFrom interprets a terminal authentication status.
// The originally submitted hash and the requested certificate level are
// carried into the response for the validator.
func AuthenticationResponseFrom(status *SessionStatus, signedHash SignableHash, requestedLevel CertificateLevel) (*AuthenticationResponse, error) {
	if err := checkCompleted(status); err != nil {
		return nil, err
	}
	if status.Signature == nil || status.Signature.Value == "" {
		return nil, NewUnprocessableResponseError("signature was not present in the session status")
	}
	if status.Cert == nil || status.Cert.Value == "" {
		return nil, NewUnprocessableResponseError("certificate was not present in the session status")
	}
	certificate, err := parseCertificate(status.Cert.Value)
	if err != nil {
		return nil, err
	}
	if requestedLevel == "" {
		requestedLevel = DefaultCertificateLevel
	}
	return &AuthenticationResponse{
		EndResult:                 status.Result.EndResult,
		SignedHashBase64:          signedHash.ValueBase64(),
		HashType:                  signedHash.HashType,
		SignatureValueBase64:      status.Signature.Value,
		AlgorithmName:             status.Signature.Algorithm,
		Certificate:               certificate,
		CertificateLevel:          CertificateLevel(status.Cert.CertificateLevel),
		RequestedCertificateLevel: requestedLevel,
		DocumentNumber:            status.Result.DocumentNumber,
		InteractionFlowUsed:       status.InteractionFlowUsed,
		DeviceIPAddress:           status.DeviceIPAddress,
		IgnoredProperties:         status.IgnoredProperties,
	}, nil
}

func checkCompleted(status *SessionStatus) error {
	if status == nil || !status.IsComplete() {
		return NewUnprocessableResponseError("session status is not complete")
	}
	if status.Result == nil {
		return NewUnprocessableResponseError("result is missing in the session status")
	}
	if !strings.EqualFold(status.Result.EndResult, EndResultOK) {
		return ErrorForEndResult(status.Result.EndResult)
	}
	return nil
}

func parseCertificate(valueBase64 string) (*x509.Certificate, error) {
	der, err := base64.StdEncoding.DecodeString(valueBase64)
	if err != nil {
		return nil, NewUnprocessableResponseError(fmt.Sprintf("could not base64-decode certificate: %s", err))
	}
	certificate, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, NewUnprocessableResponseError(fmt.Sprintf("could not parse signer's certificate: %s", err))
	}
	return certificate, nil
}
