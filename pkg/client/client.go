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

// Package client drives the three session operations of the remote identity
// service end to end: validate the request, initiate a session, poll it to a
// terminal state and interpret the outcome. Each operation also has a split
// path (Initiate… plus …Result) for callers that manage polling themselves,
// for example with a different timeout policy or across process restarts.
package client

import (
	"context"
	"time"

	"github.com/bogatykh/smartid-go-client/logging"
	"github.com/bogatykh/smartid-go-client/pkg/poller"
	"github.com/bogatykh/smartid-go-client/pkg/smartid"
)

// Client runs operations against a Connector. A Client holds no per-session
// state: concurrent callers running independent operations never block one
// another.
type Client struct {
	connector smartid.Connector
	poller    *poller.SessionStatusPoller
}

// New returns a client polling with the default interval.
func New(connector smartid.Connector) *Client {
	return &Client{
		connector: connector,
		poller:    poller.NewSessionStatusPoller(connector),
	}
}

// SetPollingSleepInterval overrides the pause between two status fetches.
func (c *Client) SetPollingSleepInterval(interval time.Duration) {
	c.poller.PollingSleepInterval = interval
}

// GetCertificate runs a certificate choice operation end to end.
func (c *Client) GetCertificate(ctx context.Context, request smartid.CertificateChoiceRequest) (*smartid.CertificateResult, error) {
	sessionID, err := c.InitiateCertificateChoice(ctx, request)
	if err != nil {
		return nil, err
	}
	status, err := c.poller.FetchFinalSessionStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return smartid.CertificateResultFrom(status)
}

// InitiateCertificateChoice validates the request and starts a session,
// returning the session id for out-of-band polling.
func (c *Client) InitiateCertificateChoice(ctx context.Context, request smartid.CertificateChoiceRequest) (string, error) {
	if err := request.Validate(); err != nil {
		return "", err
	}
	response, err := c.connector.InitiateCertificateChoice(ctx, request.Identity, request.SessionRequest())
	if err != nil {
		return "", err
	}
	logging.Log().WithField("sessionID", response.SessionID).Debug("certificate choice session started")
	return response.SessionID, nil
}

// Sign runs a signing operation end to end.
func (c *Client) Sign(ctx context.Context, request smartid.SignatureRequest) (*smartid.SignatureResult, error) {
	sessionID, err := c.InitiateSignature(ctx, request)
	if err != nil {
		return nil, err
	}
	status, err := c.poller.FetchFinalSessionStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return smartid.SignatureResultFrom(status)
}

// InitiateSignature validates the request and starts a signing session.
func (c *Client) InitiateSignature(ctx context.Context, request smartid.SignatureRequest) (string, error) {
	if err := request.Validate(); err != nil {
		return "", err
	}
	sessionRequest, err := request.SessionRequest()
	if err != nil {
		return "", err
	}
	response, err := c.connector.InitiateSignature(ctx, request.Identity, sessionRequest)
	if err != nil {
		return "", err
	}
	logging.Log().WithField("sessionID", response.SessionID).Debug("signature session started")
	return response.SessionID, nil
}

// Authenticate runs an authentication operation end to end. The returned
// response still needs to go through the response validator before the
// identity in it can be trusted.
func (c *Client) Authenticate(ctx context.Context, request smartid.AuthenticationRequest) (*smartid.AuthenticationResponse, error) {
	sessionID, err := c.InitiateAuthentication(ctx, request)
	if err != nil {
		return nil, err
	}
	status, err := c.poller.FetchFinalSessionStatus(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return c.AuthenticationResult(status, request)
}

// InitiateAuthentication validates the request and starts an authentication
// session.
func (c *Client) InitiateAuthentication(ctx context.Context, request smartid.AuthenticationRequest) (string, error) {
	if err := request.Validate(); err != nil {
		return "", err
	}
	sessionRequest, err := request.SessionRequest()
	if err != nil {
		return "", err
	}
	response, err := c.connector.InitiateAuthentication(ctx, request.Identity, sessionRequest)
	if err != nil {
		return "", err
	}
	logging.Log().WithField("sessionID", response.SessionID).Debug("authentication session started")
	return response.SessionID, nil
}

// CertificateChoiceResult interprets a terminal status fetched out-of-band.
func (c *Client) CertificateChoiceResult(status *smartid.SessionStatus) (*smartid.CertificateResult, error) {
	return smartid.CertificateResultFrom(status)
}

// SignatureResult interprets a terminal status fetched out-of-band.
func (c *Client) SignatureResult(status *smartid.SessionStatus) (*smartid.SignatureResult, error) {
	return smartid.SignatureResultFrom(status)
}

// AuthenticationResult interprets a terminal status fetched out-of-band. The
// original request supplies the submitted hash and the requested certificate
// level the validator compares against.
func (c *Client) AuthenticationResult(status *smartid.SessionStatus, request smartid.AuthenticationRequest) (*smartid.AuthenticationResponse, error) {
	hash, err := request.Hash()
	if err != nil {
		return nil, err
	}
	return smartid.AuthenticationResponseFrom(status, hash, request.CertificateLevelOrDefault())
}
