// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkuznet/cinelog/internal/platform/ctxutil"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

func TestRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", ctxutil.GetRequestID(context.Background()))
}

func TestLogger_RoundTrip(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := ctxutil.WithLogger(context.Background(), logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

func TestLogger_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), ctxutil.GetLogger(context.Background()))
}
