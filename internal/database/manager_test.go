package database

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/gogotex/usergateway/pkg/logger"
	"github.com/stretchr/testify/require"
)

// captureExit swaps the logger's exit hook for one that records the exit code.
func captureExit(t *testing.T) *int {
	t.Helper()
	code := -1
	var buf bytes.Buffer
	t.Cleanup(logger.SetOutput(&buf))
	t.Cleanup(logger.SetExitFunc(func(c int) { code = c }))
	return &code
}

func TestManager_CurrentBeforeEstablish(t *testing.T) {
	m := NewManager()

	h, err := m.Current()
	require.ErrorIs(t, err, ErrUninitialized)
	require.Nil(t, h)

	require.ErrorIs(t, m.Ready(context.Background()), ErrUninitialized)
}

func TestManager_EstablishMalformedTargetIsFatal(t *testing.T) {
	code := captureExit(t)
	m := NewManager()

	h := m.Establish(context.Background(), "not-a-mongo-uri", "db", time.Second)
	require.Nil(t, h)
	require.Equal(t, 1, *code)

	_, err := m.Current()
	require.ErrorIs(t, err, ErrUninitialized)
}

func TestManager_EstablishUnreachableTargetIsFatal(t *testing.T) {
	code := captureExit(t)
	m := NewManager()

	h := m.Establish(context.Background(), "mongodb://127.0.0.1:1/?connect=direct", "db", 300*time.Millisecond)
	require.Nil(t, h)
	require.Equal(t, 1, *code)

	_, err := m.Current()
	require.ErrorIs(t, err, ErrUninitialized)
}

func TestConnect_ReturnsErrorWithoutHandle(t *testing.T) {
	h, err := Connect(context.Background(), "mongodb://127.0.0.1:1/?connect=direct", "db", 300*time.Millisecond)
	require.Error(t, err)
	require.Nil(t, h)
	require.Contains(t, err.Error(), "mongo")
}
