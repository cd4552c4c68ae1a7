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

package poller

import (
	"context"
	"strings"
	"time"

	"github.com/bogatykh/smartid-go-client/logging"
	"github.com/bogatykh/smartid-go-client/pkg/smartid"
)

// DefaultPollingSleepInterval is slept between two status fetches when the
// poller is not configured with its own interval.
const DefaultPollingSleepInterval = time.Second

// SessionStatusPoller drives the long-poll loop of a session until the
// service reports it complete. It enforces no deadline of its own: the
// service is the source of terminal states, including its own TIMEOUT end
// result, and the caller's context bounds the wait.
type SessionStatusPoller struct {
	Connector smartid.Connector
	// PollingSleepInterval is slept between fetches. It is independent of
	// and additive to any long-poll timeout the connector attaches to the
	// fetch itself.
	PollingSleepInterval time.Duration
}

// NewSessionStatusPoller returns a poller with the default sleep interval.
func NewSessionStatusPoller(connector smartid.Connector) *SessionStatusPoller {
	return &SessionStatusPoller{Connector: connector, PollingSleepInterval: DefaultPollingSleepInterval}
}

// FetchFinalSessionStatus fetches the session status until it is COMPLETE
// and returns the terminal snapshot. Cancellation is observed before every
// fetch and during the inter-poll sleep.
func (p *SessionStatusPoller) FetchFinalSessionStatus(ctx context.Context, sessionID string) (*smartid.SessionStatus, error) {
	interval := p.PollingSleepInterval
	if interval <= 0 {
		interval = DefaultPollingSleepInterval
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		status, err := p.Connector.FetchSessionStatus(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if status.IsComplete() {
			return status, nil
		}
		if !strings.EqualFold(status.State, smartid.SessionStateRunning) {
			// unknown states are non-terminal, but a protocol change
			// should be visible in the logs
			logging.Log().Warnf("unexpected session state '%s', continuing to poll", status.State)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}
