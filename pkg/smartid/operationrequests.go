package smartid

import "unicode/utf8"

const nonceMaxLength = 30

// DefaultCertificateLevel is requested when an operation does not name one.
const DefaultCertificateLevel = CertificateLevelQualified

// CertificateChoiceRequest configures one certificate choice operation.
// A request is single-use: validate it, run it, discard it.
type CertificateChoiceRequest struct {
	RelyingPartyUUID       string
	RelyingPartyName       string
	Identity               Identity
	CertificateLevel       CertificateLevel
	Nonce                  string
	Capabilities           []string
	ShareMdClientIPAddress bool
}

// Validate checks the request before any network call. The first violated
// rule wins; the messages are part of the observable contract.
func (r CertificateChoiceRequest) Validate() error {
	if err := validateRelyingParty(r.RelyingPartyUUID, r.RelyingPartyName); err != nil {
		return err
	}
	if err := validateNonce(r.Nonce); err != nil {
		return err
	}
	return r.Identity.validate()
}

// SessionRequest renders the wire request body.
func (r CertificateChoiceRequest) SessionRequest() *CertificateChoiceSessionRequest {
	return &CertificateChoiceSessionRequest{
		RelyingPartyUUID:  r.RelyingPartyUUID,
		RelyingPartyName:  r.RelyingPartyName,
		CertificateLevel:  string(r.certificateLevel()),
		Nonce:             r.Nonce,
		Capabilities:      r.Capabilities,
		RequestProperties: requestProperties(r.ShareMdClientIPAddress),
	}
}

func (r CertificateChoiceRequest) certificateLevel() CertificateLevel {
	if r.CertificateLevel == "" {
		return DefaultCertificateLevel
	}
	return r.CertificateLevel
}

// SignatureRequest configures one signing operation. Either SignableHash or
// SignableData must be provided; data is hashed with SHA512 unless it names
// another hash type.
type SignatureRequest struct {
	RelyingPartyUUID         string
	RelyingPartyName         string
	Identity                 Identity
	CertificateLevel         CertificateLevel
	Nonce                    string
	Capabilities             []string
	SignableHash             *SignableHash
	SignableData             *SignableData
	AllowedInteractionsOrder []Interaction
	ShareMdClientIPAddress   bool
}

func (r SignatureRequest) Validate() error {
	if err := validateRelyingParty(r.RelyingPartyUUID, r.RelyingPartyName); err != nil {
		return err
	}
	if err := validateNonce(r.Nonce); err != nil {
		return err
	}
	if err := r.Identity.validate(); err != nil {
		return err
	}
	if err := validateSignable(r.SignableHash, r.SignableData); err != nil {
		return err
	}
	return validateInteractions(r.AllowedInteractionsOrder)
}

// Hash resolves the hash to sign, computing it from the signable data when no
// precomputed hash was given.
func (r SignatureRequest) Hash() (SignableHash, error) {
	return resolveHash(r.SignableHash, r.SignableData)
}

// SessionRequest renders the wire request body.
func (r SignatureRequest) SessionRequest() (*SignatureSessionRequest, error) {
	hash, err := r.Hash()
	if err != nil {
		return nil, err
	}
	return &SignatureSessionRequest{
		RelyingPartyUUID:         r.RelyingPartyUUID,
		RelyingPartyName:         r.RelyingPartyName,
		CertificateLevel:         string(r.certificateLevel()),
		Hash:                     hash.ValueBase64(),
		HashType:                 string(hash.HashType),
		Nonce:                    r.Nonce,
		Capabilities:             r.Capabilities,
		AllowedInteractionsOrder: r.AllowedInteractionsOrder,
		RequestProperties:        requestProperties(r.ShareMdClientIPAddress),
	}, nil
}

func (r SignatureRequest) certificateLevel() CertificateLevel {
	if r.CertificateLevel == "" {
		return DefaultCertificateLevel
	}
	return r.CertificateLevel
}

// AuthenticationRequest configures one authentication operation. It is
// structurally identical to SignatureRequest; the submitted hash is kept
// around in the result so the response validator can verify the signature
// over it.
type AuthenticationRequest struct {
	RelyingPartyUUID         string
	RelyingPartyName         string
	Identity                 Identity
	CertificateLevel         CertificateLevel
	Nonce                    string
	Capabilities             []string
	SignableHash             *SignableHash
	SignableData             *SignableData
	AllowedInteractionsOrder []Interaction
	ShareMdClientIPAddress   bool
}

func (r AuthenticationRequest) Validate() error {
	if err := validateRelyingParty(r.RelyingPartyUUID, r.RelyingPartyName); err != nil {
		return err
	}
	if err := validateNonce(r.Nonce); err != nil {
		return err
	}
	if err := r.Identity.validate(); err != nil {
		return err
	}
	if err := validateSignable(r.SignableHash, r.SignableData); err != nil {
		return err
	}
	return validateInteractions(r.AllowedInteractionsOrder)
}

// Hash resolves the hash to authenticate over, computing it from the
// signable data when no precomputed hash was given.
func (r AuthenticationRequest) Hash() (SignableHash, error) {
	return resolveHash(r.SignableHash, r.SignableData)
}

// SessionRequest renders the wire request body.
func (r AuthenticationRequest) SessionRequest() (*AuthenticationSessionRequest, error) {
	hash, err := r.Hash()
	if err != nil {
		return nil, err
	}
	return &AuthenticationSessionRequest{
		RelyingPartyUUID:         r.RelyingPartyUUID,
		RelyingPartyName:         r.RelyingPartyName,
		CertificateLevel:         string(r.CertificateLevelOrDefault()),
		Hash:                     hash.ValueBase64(),
		HashType:                 string(hash.HashType),
		Nonce:                    r.Nonce,
		Capabilities:             r.Capabilities,
		AllowedInteractionsOrder: r.AllowedInteractionsOrder,
		RequestProperties:        requestProperties(r.ShareMdClientIPAddress),
	}, nil
}

// CertificateLevelOrDefault returns the requested certificate level, falling
// back to the default. The response validator compares the signer's reported
// level against this value.
func (r AuthenticationRequest) CertificateLevelOrDefault() CertificateLevel {
	if r.CertificateLevel == "" {
		return DefaultCertificateLevel
	}
	return r.CertificateLevel
}

func validateRelyingParty(relyingPartyUUID, relyingPartyName string) error {
	if relyingPartyUUID == "" {
		return NewClientConfigurationError("Parameter relyingPartyUUID must be set")
	}
	if relyingPartyName == "" {
		return NewClientConfigurationError("Parameter relyingPartyName must be set")
	}
	return nil
}

func validateNonce(nonce string) error {
	if utf8.RuneCountInString(nonce) > nonceMaxLength {
		return NewClientConfigurationError("nonce must not be longer than 30 characters")
	}
	return nil
}

func (i Identity) validate() error {
	hasDocumentNumber := i.DocumentNumber != ""
	hasSemanticsIdentifier := !i.SemanticsIdentifier.IsZero()
	if !hasDocumentNumber && !hasSemanticsIdentifier {
		return NewClientConfigurationError("Either documentNumber or semanticsIdentifier must be set")
	}
	if hasDocumentNumber && hasSemanticsIdentifier {
		return NewClientConfigurationError("Exactly one of documentNumber or semanticsIdentifier must be set")
	}
	return nil
}

func validateSignable(hash *SignableHash, data *SignableData) error {
	hashUsable := hash != nil && hash.IsValid()
	dataUsable := data != nil && len(data.Data) > 0
	if !hashUsable && !dataUsable {
		return NewClientConfigurationError("Either signableHash or signableData must be set")
	}
	return nil
}

func validateInteractions(interactions []Interaction) error {
	if len(interactions) == 0 {
		return NewClientConfigurationError("allowedInteractionsOrder must contain at least one interaction")
	}
	for _, interaction := range interactions {
		if err := interaction.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func resolveHash(hash *SignableHash, data *SignableData) (SignableHash, error) {
	if hash != nil && hash.IsValid() {
		return *hash, nil
	}
	if data != nil && len(data.Data) > 0 {
		return data.CalculateHash()
	}
	return SignableHash{}, NewClientConfigurationError("Either signableHash or signableData must be set")
}

func requestProperties(shareIP bool) *RequestProperties {
	if !shareIP {
		return nil
	}
	return &RequestProperties{ShareMdClientIPAddress: true}
}
