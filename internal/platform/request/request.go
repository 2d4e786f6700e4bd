// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: m.kuznetsov.dev@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mkuznet/cinelog/internal/platform/apperr"
	"github.com/mkuznet/cinelog/internal/platform/validate"
	"github.com/mkuznet/cinelog/pkg/convert"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Int64Param retrieves a named URL parameter and parses it as an int64.

Returns:
  - int64: The parsed value
  - error: apperr.InvalidID if the parameter is missing or not a number
*/
func Int64Param(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.InvalidID("Malformed id: " + raw)
	}
	return id, nil
}

/*
QueryIntD retrieves a query parameter as an int, falling back to def when
the parameter is absent or malformed.
*/
func QueryIntD(request *http.Request, name string, def int) int {
	return convert.ToIntD(request.URL.Query().Get(name), def)
}
