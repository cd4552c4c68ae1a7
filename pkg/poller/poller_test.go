package poller

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mock_smartid "github.com/bogatykh/smartid-go-client/mock/smartid"
	"github.com/bogatykh/smartid-go-client/pkg/smartid"
)

const sessionID = "de305d54-75b4-431b-adb2-eb6b9e546014"

func running() *smartid.SessionStatus {
	return &smartid.SessionStatus{State: "RUNNING"}
}

func complete() *smartid.SessionStatus {
	return &smartid.SessionStatus{
		State:  "COMPLETE",
		Result: &smartid.SessionResult{EndResult: "OK"},
	}
}

func TestSessionStatusPoller_FetchFinalSessionStatus(t *testing.T) {
	t.Run("an immediately complete session is fetched exactly once", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := mock_smartid.NewMockConnector(ctrl)
		connector.EXPECT().FetchSessionStatus(gomock.Any(), sessionID).Return(complete(), nil).Times(1)

		poller := &SessionStatusPoller{Connector: connector, PollingSleepInterval: time.Millisecond}
		status, err := poller.FetchFinalSessionStatus(context.Background(), sessionID)
		require.NoError(t, err)
		assert.True(t, status.IsComplete())
	})

	t.Run("N running responses cause exactly N+1 fetches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := mock_smartid.NewMockConnector(ctrl)
		gomock.InOrder(
			connector.EXPECT().FetchSessionStatus(gomock.Any(), sessionID).Return(running(), nil).Times(3),
			connector.EXPECT().FetchSessionStatus(gomock.Any(), sessionID).Return(complete(), nil).Times(1),
		)

		poller := &SessionStatusPoller{Connector: connector, PollingSleepInterval: time.Millisecond}
		status, err := poller.FetchFinalSessionStatus(context.Background(), sessionID)
		require.NoError(t, err)
		assert.True(t, status.IsComplete())
	})

	t.Run("a lowercase complete state is terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := mock_smartid.NewMockConnector(ctrl)
		connector.EXPECT().FetchSessionStatus(gomock.Any(), sessionID).Return(&smartid.SessionStatus{State: "complete"}, nil).Times(1)

		poller := &SessionStatusPoller{Connector: connector, PollingSleepInterval: time.Millisecond}
		_, err := poller.FetchFinalSessionStatus(context.Background(), sessionID)
		assert.NoError(t, err)
	})

	t.Run("an unknown state is treated as non-terminal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := mock_smartid.NewMockConnector(ctrl)
		gomock.InOrder(
			connector.EXPECT().FetchSessionStatus(gomock.Any(), sessionID).Return(&smartid.SessionStatus{State: "SOMETHING_NEW"}, nil).Times(1),
			connector.EXPECT().FetchSessionStatus(gomock.Any(), sessionID).Return(complete(), nil).Times(1),
		)

		poller := &SessionStatusPoller{Connector: connector, PollingSleepInterval: time.Millisecond}
		_, err := poller.FetchFinalSessionStatus(context.Background(), sessionID)
		assert.NoError(t, err)
	})

	t.Run("five running responses with a 200ms interval take between 1.0 and 1.5 seconds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := mock_smartid.NewMockConnector(ctrl)
		gomock.InOrder(
			connector.EXPECT().FetchSessionStatus(gomock.Any(), sessionID).Return(running(), nil).Times(5),
			connector.EXPECT().FetchSessionStatus(gomock.Any(), sessionID).Return(complete(), nil).Times(1),
		)

		poller := &SessionStatusPoller{Connector: connector, PollingSleepInterval: 200 * time.Millisecond}
		start := time.Now()
		_, err := poller.FetchFinalSessionStatus(context.Background(), sessionID)
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 1000*time.Millisecond)
		assert.Less(t, elapsed, 1500*time.Millisecond)
	})

	t.Run("a fetch error stops the loop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := mock_smartid.NewMockConnector(ctrl)
		connector.EXPECT().FetchSessionStatus(gomock.Any(), sessionID).Return(nil, smartid.ErrSessionNotFound).Times(1)

		poller := &SessionStatusPoller{Connector: connector, PollingSleepInterval: time.Millisecond}
		_, err := poller.FetchFinalSessionStatus(context.Background(), sessionID)
		assert.ErrorIs(t, err, smartid.ErrSessionNotFound)
	})

	t.Run("cancellation during the sleep is observed promptly", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := mock_smartid.NewMockConnector(ctrl)
		connector.EXPECT().FetchSessionStatus(gomock.Any(), sessionID).Return(running(), nil).Times(1)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		poller := &SessionStatusPoller{Connector: connector, PollingSleepInterval: time.Hour}
		start := time.Now()
		_, err := poller.FetchFinalSessionStatus(ctx, sessionID)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("an already cancelled context never fetches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		connector := mock_smartid.NewMockConnector(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		poller := NewSessionStatusPoller(connector)
		_, err := poller.FetchFinalSessionStatus(ctx, sessionID)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
