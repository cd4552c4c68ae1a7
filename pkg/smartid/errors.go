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
	"fmt"
	"strings"
)

// ErrorCode classifies every failure this module can produce. The set is
// closed: callers can switch over it exhaustively instead of matching on
// error strings or concrete types.
type ErrorCode int

const (
	// CodeClientConfiguration marks bad or missing request parameters,
	// detected locally before any network call is made.
	CodeClientConfiguration ErrorCode = iota + 1

	// CodeUnprocessableResponse marks a remote reply that is malformed,
	// incomplete or carries an end result this client does not recognize.
	CodeUnprocessableResponse

	// CodeSessionNotFound is returned when the session id is unknown to the
	// remote service (or the session already expired there).
	CodeSessionNotFound

	CodeUserRefused
	CodeUserRefusedCertChoice
	CodeUserRefusedDisplayTextAndPIN
	CodeUserRefusedVerificationChoice
	CodeUserRefusedConfirmationMessage
	CodeUserRefusedConfirmationMessageWithVerificationChoice
	CodeSessionTimeout
	CodeWrongVerificationCodeChosen
	CodeRequiredInteractionNotSupported

	CodeDocumentUnusable
	CodeUserAccountNotFound
	CodeNoSuitableAccountOfRequestedType
	CodePersonShouldViewPortal
	CodeCertificateLevelMismatch

	CodeRelyingPartyConfiguration
	CodeServerMaintenance
	CodeClientVersionUnsupported
)

// Error is the single error type of the protocol engine. EndResult carries
// the server's terminal outcome classifier when the error originates from a
// completed session.
type Error struct {
	Code      ErrorCode
	EndResult string
	Message   string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on the error code so that errors.Is works against the sentinel
// instances below regardless of the message or end result carried.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinel instances for every outcome a completed session can carry and for
// the transport level failures the connector maps. Compare with errors.Is.
var (
	ErrSessionNotFound = &Error{Code: CodeSessionNotFound, Message: "session not found or expired"}

	ErrUserRefused                                          = &Error{Code: CodeUserRefused, EndResult: EndResultUserRefused, Message: "user refused the operation"}
	ErrUserRefusedCertChoice                                = &Error{Code: CodeUserRefusedCertChoice, EndResult: EndResultUserRefusedCertChoice, Message: "user refused the certificate choice"}
	ErrUserRefusedDisplayTextAndPIN                         = &Error{Code: CodeUserRefusedDisplayTextAndPIN, EndResult: EndResultUserRefusedDisplayTextAndPIN, Message: "user refused on the PIN screen"}
	ErrUserRefusedVerificationChoice                        = &Error{Code: CodeUserRefusedVerificationChoice, EndResult: EndResultUserRefusedVCChoice, Message: "user refused on the verification code choice screen"}
	ErrUserRefusedConfirmationMessage                       = &Error{Code: CodeUserRefusedConfirmationMessage, EndResult: EndResultUserRefusedConfirmationMessage, Message: "user refused on the confirmation message screen"}
	ErrUserRefusedConfirmationMessageWithVerificationChoice = &Error{Code: CodeUserRefusedConfirmationMessageWithVerificationChoice, EndResult: EndResultUserRefusedConfirmationMessageWithVCChoice, Message: "user refused on the confirmation message with verification code choice screen"}
	ErrSessionTimeout                                       = &Error{Code: CodeSessionTimeout, EndResult: EndResultTimeout, Message: "session timed out waiting for the user"}
	ErrWrongVerificationCodeChosen                          = &Error{Code: CodeWrongVerificationCodeChosen, EndResult: EndResultWrongVC, Message: "user chose the wrong verification code"}
	ErrRequiredInteractionNotSupported                      = &Error{Code: CodeRequiredInteractionNotSupported, EndResult: EndResultRequiredInteractionNotSupportedByApp, Message: "none of the allowed interactions is supported by the user's app"}

	ErrDocumentUnusable                 = &Error{Code: CodeDocumentUnusable, EndResult: EndResultDocumentUnusable, Message: "document is unusable, user should check the app or portal"}
	ErrUserAccountNotFound              = &Error{Code: CodeUserAccountNotFound, Message: "user does not have an account for the given identity"}
	ErrNoSuitableAccountOfRequestedType = &Error{Code: CodeNoSuitableAccountOfRequestedType, Message: "no suitable account of the requested type was found"}
	ErrPersonShouldViewPortal           = &Error{Code: CodePersonShouldViewPortal, Message: "person should view the app or the self-service portal"}
	ErrCertificateLevelMismatch         = &Error{Code: CodeCertificateLevelMismatch, Message: "certificate level mismatch: signer's certificate is below the requested certificate level"}

	ErrRelyingPartyConfiguration = &Error{Code: CodeRelyingPartyConfiguration, Message: "relying party account is misconfigured or unauthorized"}
	ErrServerMaintenance         = &Error{Code: CodeServerMaintenance, Message: "server is under maintenance, retry later"}
	ErrClientVersionUnsupported  = &Error{Code: CodeClientVersionUnsupported, Message: "client API version is no longer supported"}
)

// NewClientConfigurationError reports a parameter problem that was detected
// before any request was sent.
func NewClientConfigurationError(message string) *Error {
	return &Error{Code: CodeClientConfiguration, Message: message}
}

// NewUnprocessableResponseError reports a remote reply this client cannot
// interpret or trust.
func NewUnprocessableResponseError(message string) *Error {
	return &Error{Code: CodeUnprocessableResponse, Message: message}
}

// ErrorForEndResult maps a terminal session end result onto the taxonomy.
// Unrecognized codes are a protocol violation, not a user outcome: treating
// them as a refusal would silently misclassify future server behavior.
func ErrorForEndResult(endResult string) *Error {
	switch strings.ToUpper(endResult) {
	case EndResultUserRefused:
		return ErrUserRefused
	case EndResultUserRefusedCertChoice:
		return ErrUserRefusedCertChoice
	case EndResultUserRefusedDisplayTextAndPIN:
		return ErrUserRefusedDisplayTextAndPIN
	case EndResultUserRefusedVCChoice:
		return ErrUserRefusedVerificationChoice
	case EndResultUserRefusedConfirmationMessage:
		return ErrUserRefusedConfirmationMessage
	case EndResultUserRefusedConfirmationMessageWithVCChoice:
		return ErrUserRefusedConfirmationMessageWithVerificationChoice
	case EndResultTimeout:
		return ErrSessionTimeout
	case EndResultWrongVC:
		return ErrWrongVerificationCodeChosen
	case EndResultRequiredInteractionNotSupportedByApp:
		return ErrRequiredInteractionNotSupported
	case EndResultDocumentUnusable:
		return ErrDocumentUnusable
	default:
		return &Error{
			Code:      CodeUnprocessableResponse,
			EndResult: endResult,
			Message:   fmt.Sprintf("unprocessable response: end result code '%s'", endResult),
		}
	}
}
