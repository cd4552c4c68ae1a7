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

package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"

	"github.com/bogatykh/smartid-go-client/logging"
	"github.com/bogatykh/smartid-go-client/pkg/smartid"
)

// Well known service endpoints.
const (
	DemoEnvironmentURL       = "https://sid.demo.sk.ee/smart-id-rp/v2"
	ProductionEnvironmentURL = "https://rp-api.smart-id.com/v2"
)

// Vendor specific status codes the service uses beyond plain HTTP semantics.
const (
	statusNoSuitableAccount        = 471
	statusPersonShouldViewPortal   = 472
	statusClientVersionUnsupported = 480
	statusServerMaintenance        = 580
)

// RestConnector implements smartid.Connector against the service's REST API.
// Retries are a transport concern and live here, in the retryable client;
// the protocol layer above never retries on its own.
type RestConnector struct {
	baseURL    string
	client     *retryablehttp.Client
	socketOpen time.Duration
}

var _ smartid.Connector = (*RestConnector)(nil)

// NewRestConnector returns a connector for the given base URL, for example
// DemoEnvironmentURL.
func NewRestConnector(baseURL string) *RestConnector {
	client := retryablehttp.NewClient()
	client.Logger = leveledLogger{entry: logging.Log()}
	client.CheckRetry = retryPolicy
	// when retries are exhausted the final response must still reach the
	// status code mapping instead of being swallowed by a giving-up error
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return &RestConnector{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
}

// retryPolicy keeps the default transient-failure retries but never retries
// the vendor specific status codes: those are protocol outcomes, not flaky
// transport, and each maps onto its own error.
func retryPolicy(ctx context.Context, response *http.Response, err error) (bool, error) {
	if response != nil {
		switch response.StatusCode {
		case statusNoSuitableAccount, statusPersonShouldViewPortal, statusClientVersionUnsupported, statusServerMaintenance:
			return false, nil
		}
	}
	return retryablehttp.DefaultRetryPolicy(ctx, response, err)
}

// SetSessionStatusResponseSocketOpenTime asks the service to hold each status
// response open for up to the given duration waiting for a state change.
// This reduces the number of polling round trips; zero disables it.
func (c *RestConnector) SetSessionStatusResponseSocketOpenTime(d time.Duration) {
	c.socketOpen = d
}

// HTTPClient exposes the underlying retryable client so callers can tune
// timeouts, retry counts or the transport.
func (c *RestConnector) HTTPClient() *retryablehttp.Client {
	return c.client
}

func (c *RestConnector) InitiateCertificateChoice(ctx context.Context, identity smartid.Identity, request *smartid.CertificateChoiceSessionRequest) (*smartid.SessionResponse, error) {
	return c.initiateSession(ctx, "certificatechoice", identity, request)
}

func (c *RestConnector) InitiateSignature(ctx context.Context, identity smartid.Identity, request *smartid.SignatureSessionRequest) (*smartid.SessionResponse, error) {
	return c.initiateSession(ctx, "signature", identity, request)
}

func (c *RestConnector) InitiateAuthentication(ctx context.Context, identity smartid.Identity, request *smartid.AuthenticationSessionRequest) (*smartid.SessionResponse, error) {
	return c.initiateSession(ctx, "authentication", identity, request)
}

// FetchSessionStatus fetches one status snapshot. When a socket open time is
// configured it is passed along so the service long-polls before answering.
func (c *RestConnector) FetchSessionStatus(ctx context.Context, sessionID string) (*smartid.SessionStatus, error) {
	endpoint := fmt.Sprintf("%s/session/%s", c.baseURL, url.PathEscape(sessionID))
	if c.socketOpen > 0 {
		endpoint = fmt.Sprintf("%s?timeoutMs=%d", endpoint, c.socketOpen.Milliseconds())
	}

	logging.Log().WithField("url", endpoint).Debug("fetching session status")
	body, statusCode, err := c.execute(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case statusCode == http.StatusOK:
		status := &smartid.SessionStatus{}
		if err := json.Unmarshal(body, status); err != nil {
			return nil, smartid.NewUnprocessableResponseError(fmt.Sprintf("could not parse session status response: %s", err))
		}
		return status, nil
	case statusCode == http.StatusNotFound:
		return nil, smartid.ErrSessionNotFound
	default:
		return nil, errorForStatusCode(statusCode, body)
	}
}

func (c *RestConnector) initiateSession(ctx context.Context, action string, identity smartid.Identity, request interface{}) (*smartid.SessionResponse, error) {
	endpoint, err := c.sessionEndpoint(action, identity)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal session request")
	}

	logging.Log().WithField("url", endpoint).Debugf("initiating %s session", action)
	body, statusCode, err := c.execute(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return nil, err
	}

	switch statusCode {
	case http.StatusOK:
		response := &smartid.SessionResponse{}
		if err := json.Unmarshal(body, response); err != nil {
			return nil, smartid.NewUnprocessableResponseError(fmt.Sprintf("could not parse session response: %s", err))
		}
		if response.SessionID == "" {
			return nil, smartid.NewUnprocessableResponseError("session response did not contain a session id")
		}
		return response, nil
	case http.StatusNotFound:
		return nil, smartid.ErrUserAccountNotFound
	default:
		return nil, errorForStatusCode(statusCode, body)
	}
}

func (c *RestConnector) sessionEndpoint(action string, identity smartid.Identity) (string, error) {
	switch {
	case identity.DocumentNumber != "":
		return fmt.Sprintf("%s/%s/document/%s", c.baseURL, action, url.PathEscape(identity.DocumentNumber)), nil
	case !identity.SemanticsIdentifier.IsZero():
		return fmt.Sprintf("%s/%s/etsi/%s", c.baseURL, action, url.PathEscape(identity.SemanticsIdentifier.String())), nil
	default:
		return "", smartid.NewClientConfigurationError("Either documentNumber or semanticsIdentifier must be set")
	}
}

func (c *RestConnector) execute(ctx context.Context, method, endpoint string, payload []byte) ([]byte, int, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	request, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return nil, 0, errors.Wrap(err, "could not create request")
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		return nil, 0, errors.Wrap(err, "request to identity service failed")
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, 0, errors.Wrap(err, "could not read response body")
	}

	logging.Log().WithField("status", response.StatusCode).Debugf("identity service answered with %d bytes", len(body))
	return body, response.StatusCode, nil
}

// errorForStatusCode maps HTTP and vendor specific status codes onto the
// error taxonomy.
func errorForStatusCode(statusCode int, body []byte) error {
	switch statusCode {
	case http.StatusBadRequest:
		return smartid.NewClientConfigurationError(fmt.Sprintf("request was rejected by the service: %s", strings.TrimSpace(string(body))))
	case http.StatusUnauthorized, http.StatusForbidden:
		return smartid.ErrRelyingPartyConfiguration
	case statusNoSuitableAccount:
		return smartid.ErrNoSuitableAccountOfRequestedType
	case statusPersonShouldViewPortal:
		return smartid.ErrPersonShouldViewPortal
	case statusClientVersionUnsupported:
		return smartid.ErrClientVersionUnsupported
	case statusServerMaintenance:
		return smartid.ErrServerMaintenance
	default:
		return smartid.NewUnprocessableResponseError(fmt.Sprintf("unexpected response status %d", statusCode))
	}
}
