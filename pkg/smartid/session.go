package smartid

import "strings"

// Session states reported by the service. Anything that is not COMPLETE is
// treated as non-terminal by the poller.
const (
	SessionStateRunning  = "RUNNING"
	SessionStateComplete = "COMPLETE"
)

// End result codes of a completed session.
const (
	EndResultOK                                         = "OK"
	EndResultUserRefused                                = "USER_REFUSED"
	EndResultUserRefusedCertChoice                      = "USER_REFUSED_CERT_CHOICE"
	EndResultUserRefusedDisplayTextAndPIN               = "USER_REFUSED_DISPLAYTEXTANDPIN"
	EndResultUserRefusedVCChoice                        = "USER_REFUSED_VC_CHOICE"
	EndResultUserRefusedConfirmationMessage             = "USER_REFUSED_CONFIRMATIONMESSAGE"
	EndResultUserRefusedConfirmationMessageWithVCChoice = "USER_REFUSED_CONFIRMATIONMESSAGE_WITH_VC_CHOICE"
	EndResultTimeout                                    = "TIMEOUT"
	EndResultWrongVC                                    = "WRONG_VC"
	EndResultRequiredInteractionNotSupportedByApp       = "REQUIRED_INTERACTION_NOT_SUPPORTED_BY_APP"
	EndResultDocumentUnusable                           = "DOCUMENT_UNUSABLE"
)

// SessionStatus is a status snapshot of a session as reported by the service.
// Result, Cert and Signature are only populated once State is COMPLETE, and
// which of them are present depends on the operation and the end result.
type SessionStatus struct {
	State               string              `json:"state"`
	Result              *SessionResult      `json:"result,omitempty"`
	Cert                *SessionCertificate `json:"cert,omitempty"`
	Signature           *SessionSignature   `json:"signature,omitempty"`
	InteractionFlowUsed string              `json:"interactionFlowUsed,omitempty"`
	DeviceIPAddress     string              `json:"deviceIpAddress,omitempty"`
	IgnoredProperties   []string            `json:"ignoredProperties,omitempty"`
}

// IsComplete reports whether the session reached its terminal state.
// The comparison is case-insensitive, like the service documents it.
func (s *SessionStatus) IsComplete() bool {
	return strings.EqualFold(s.State, SessionStateComplete)
}

// SessionResult carries the terminal outcome of a completed session.
type SessionResult struct {
	EndResult      string `json:"endResult"`
	DocumentNumber string `json:"documentNumber,omitempty"`
}

// SessionCertificate holds the signer's certificate as base64 encoded DER
// together with the level the service attests for it.
type SessionCertificate struct {
	Value            string `json:"value"`
	CertificateLevel string `json:"certificateLevel"`
}

// SessionSignature holds the base64 encoded signature value and the name of
// the algorithm the user's app signed with.
type SessionSignature struct {
	Value     string `json:"value"`
	Algorithm string `json:"algorithm"`
}

// SessionResponse is the reply to a session initiation call. The session id
// is the sole key for all subsequent status polls.
type SessionResponse struct {
	SessionID string `json:"sessionID"`
}
