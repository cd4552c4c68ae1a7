package smartid

// Wire request bodies for session initiation. Field names follow the
// service's REST API.

// RequestProperties asks the service for optional extras in the session
// status, currently only the IP address of the user's device.
type RequestProperties struct {
	ShareMdClientIPAddress bool `json:"shareMdClientIpAddress"`
}

// CertificateChoiceSessionRequest initiates a certificate choice session.
type CertificateChoiceSessionRequest struct {
	RelyingPartyUUID  string             `json:"relyingPartyUUID"`
	RelyingPartyName  string             `json:"relyingPartyName"`
	CertificateLevel  string             `json:"certificateLevel,omitempty"`
	Nonce             string             `json:"nonce,omitempty"`
	Capabilities      []string           `json:"capabilities,omitempty"`
	RequestProperties *RequestProperties `json:"requestProperties,omitempty"`
}

// SignatureSessionRequest initiates a signing session.
type SignatureSessionRequest struct {
	RelyingPartyUUID         string             `json:"relyingPartyUUID"`
	RelyingPartyName         string             `json:"relyingPartyName"`
	CertificateLevel         string             `json:"certificateLevel,omitempty"`
	Hash                     string             `json:"hash"`
	HashType                 string             `json:"hashType"`
	Nonce                    string             `json:"nonce,omitempty"`
	Capabilities             []string           `json:"capabilities,omitempty"`
	AllowedInteractionsOrder []Interaction      `json:"allowedInteractionsOrder"`
	RequestProperties        *RequestProperties `json:"requestProperties,omitempty"`
}

// AuthenticationSessionRequest initiates an authentication session.
type AuthenticationSessionRequest struct {
	RelyingPartyUUID         string             `json:"relyingPartyUUID"`
	RelyingPartyName         string             `json:"relyingPartyName"`
	CertificateLevel         string             `json:"certificateLevel,omitempty"`
	Hash                     string             `json:"hash"`
	HashType                 string             `json:"hashType"`
	Nonce                    string             `json:"nonce,omitempty"`
	Capabilities             []string           `json:"capabilities,omitempty"`
	AllowedInteractionsOrder []Interaction      `json:"allowedInteractionsOrder"`
	RequestProperties        *RequestProperties `json:"requestProperties,omitempty"`
}
