// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

// Package ctxkey defines the typed keys used to store request-scoped values
// in [context.Context].
//
// Using an unexported key type prevents collisions with keys defined by
// other packages.
package ctxkey

type contextKey string

const (
	// KeyRequestID stores the correlation ID of the current request.
	KeyRequestID contextKey = "request_id"

	// KeyLogger stores the request-scoped [*slog.Logger].
	KeyLogger contextKey = "logger"
)
