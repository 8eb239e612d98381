package wizard

import (
	"context"
	"testing"
	"time"

	"cancelflow/internal/common/logger"
	"cancelflow/internal/domain/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_Lifecycle(t *testing.T) {
	st := new(MockStore)
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	m := NewSessionManager(st, pub, nil, logger.NewMockLogger())

	sessionID, ctrl := m.Open(context.Background(), "")
	require.NotEmpty(t, sessionID)
	assert.Equal(t, wizard.StepInitial, ctrl.Step())

	got, err := m.Get(sessionID)
	require.NoError(t, err)
	assert.Same(t, ctrl, got)

	require.NoError(t, m.Close(sessionID))

	_, err = m.Get(sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, m.Close(sessionID), ErrSessionNotFound)
}

func TestSessionManager_SessionsAreIndependent(t *testing.T) {
	st := new(MockStore)
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	m := NewSessionManager(st, pub, nil, logger.NewMockLogger())

	ctx := context.Background()
	id1, c1 := m.Open(ctx, "")
	id2, c2 := m.Open(ctx, "")
	require.NotEqual(t, id1, id2)

	_, err := c1.Dispatch(ctx, wizard.ChoseBranch{FoundJob: false})
	require.NoError(t, err)

	assert.Equal(t, wizard.StepOffer, c1.Step())
	assert.Equal(t, wizard.StepInitial, c2.Step())
}

func TestSessionManager_EvictIdle(t *testing.T) {
	st := new(MockStore)
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	m := NewSessionManager(st, pub, nil, logger.NewMockLogger())

	ctx := context.Background()
	staleID, staleCtrl := m.Open(ctx, "")
	freshID, _ := m.Open(ctx, "")

	// Age the first session past the cutoff
	m.mu.Lock()
	m.sessions[staleID].lastSeen = time.Now().Add(-time.Hour)
	m.mu.Unlock()

	assert.Equal(t, 1, m.EvictIdle(30*time.Minute))

	_, err := m.Get(staleID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = m.Get(freshID)
	assert.NoError(t, err)

	// An evicted session behaves like a closed one
	_, err = staleCtrl.Dispatch(ctx, wizard.ChoseBranch{FoundJob: false})
	assert.ErrorIs(t, err, ErrSessionClosed)

	// Get above refreshed the idle clock
	assert.Equal(t, 0, m.EvictIdle(30*time.Minute))
}
