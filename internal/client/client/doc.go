// Package client is the HTTP adapter in front of the EHR REST API.
//
// # Overview
//
// HTTPClient sends JSON requests relative to a base URL (".../api") and:
//  1. attaches "Authorization: Bearer <token>" when a token is stored,
//  2. tags every request with a fresh X-Request-Id,
//  3. purges the stored credentials on any 401 answer (it never redirects;
//     that is a view concern),
//  4. validates every 2xx body against one response envelope: either the bare
//     payload or {"status": "success", "data": <payload>}.
//
// # Error Handling
//
// Failures map onto the sentinels in package common: ErrUnavailable for
// transport errors and 5xx, ErrUnauthorized for 401, ErrNotFound for 404,
// *common.ValidationError (ErrValidation) for 400/422, ErrMalformedResponse
// for 2xx bodies of the wrong shape. Other statuses surface as
// *common.APIError. Nothing is retried.
package client
