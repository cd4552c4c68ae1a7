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

import "context"

// Identity addresses the account an operation targets: either the document
// number returned by an earlier certificate choice, or an ETSI semantics
// identifier. Exactly one must be set.
type Identity struct {
	DocumentNumber      string
	SemanticsIdentifier SemanticsIdentifier
}

// IdentityByDocumentNumber targets an account by document number.
func IdentityByDocumentNumber(documentNumber string) Identity {
	return Identity{DocumentNumber: documentNumber}
}

// IdentityBySemanticsIdentifier targets an account by semantics identifier.
func IdentityBySemanticsIdentifier(identifier SemanticsIdentifier) Identity {
	return Identity{SemanticsIdentifier: identifier}
}

// Connector is the transport boundary of the protocol engine. Implementations
// must map transport level failures onto the error taxonomy of this package
// and must honor context cancellation on every call.
type Connector interface {
	InitiateCertificateChoice(ctx context.Context, identity Identity, request *CertificateChoiceSessionRequest) (*SessionResponse, error)
	InitiateSignature(ctx context.Context, identity Identity, request *SignatureSessionRequest) (*SessionResponse, error)
	InitiateAuthentication(ctx context.Context, identity Identity, request *AuthenticationSessionRequest) (*SessionResponse, error)
	// FetchSessionStatus returns the current status snapshot of a session.
	// Implementations may attach a long-poll timeout so the service holds
	// the response open waiting for a state change.
	FetchSessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)
}
