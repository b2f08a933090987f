package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/WestonVoglesonger/Multifact-V3/internal/app"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/domain"
	"github.com/WestonVoglesonger/Multifact-V3/internal/core/ports/mocks"
)

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// 1. Setup Mocks
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockWatcher := mocks.NewMockWatcher(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	// 2. Create Real App with Mocks
	application := app.New(mockLoader, mockWatcher, mockLogger)

	// 3. Define Provider
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() {}, nil
	}

	// 4. Capture Stderr
	stderr := new(bytes.Buffer)

	// 5. Run with "version" command
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockWatcher := mocks.NewMockWatcher(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	// Stub Logger Error
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := app.New(mockLoader, mockWatcher, mockLogger)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	// The narrative file does not exist, so the compile command fails.
	exitCode := run(context.Background(), []string{"compile", filepath.Join(t.TempDir(), "missing.story")}, stderr, provider)

	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that the context is canceled on signal.
func TestRun_Signal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tmpDir := t.TempDir()
	narrative := filepath.Join(tmpDir, "app.story")
	if err := os.WriteFile(narrative, []byte("[Scene:Home]\nA landing page.\n"), 0o600); err != nil {
		t.Fatalf("Failed to write narrative: %v", err)
	}

	// We need a loader that blocks until the test releases it.
	blockCh := make(chan struct{})

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).DoAndReturn(func(_ string) (*domain.Config, error) {
		select {
		case <-blockCh:
			return nil, context.Canceled
		case <-time.After(5 * time.Second):
			return nil, errors.New("timeout in mock")
		}
	})

	mockWatcher := mocks.NewMockWatcher(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	// Allow logging of the error when context is canceled
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := app.New(mockLoader, mockWatcher, mockLogger)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)

	go func() {
		errCh <- run(ctx, []string{"compile", narrative}, io.Discard, func(context.Context) (*app.Components, func(), error) {
			return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
		})
	}()

	// Wait a bit to ensure run() reaches Load()
	time.Sleep(100 * time.Millisecond)

	cancel()
	close(blockCh)

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("TestRun_Signal timed out waiting for run() to return")
	}
}
