// Package resolvex provides an HTTP client for the resolvex admin API.
//
// # Endpoints
//
//	GET    /api            → {"list": [Record, ...]}
//	POST   /api            {"domain": "..."}
//	PUT    /api/{domain}/  {"domain": "<new name>"}
//	DELETE /api/{domain}/
//
// Records have the shape {"domain": string, "record": [string]|null,
// "expire": RFC 3339|null}.
//
// # Errors
//
// Calls fail in one of two ways:
//
//   - *TransportError: the request never got a response (dial, timeout,
//     context cancellation).
//   - *ServerError: a non-2xx status. The body is kept verbatim as Message,
//     with "Server error" substituted for an empty body. The server usually
//     sends a {code, message, description} JSON object; rendering it is
//     left to the notify package.
//
// A 2xx list response without the "list" key is not an error; List returns a
// ListResponse whose HasList is false and callers decide what "no data"
// means.
//
// # Instrumentation
//
// The client never constructs its own transport when given one: pass the
// application's *transport.Instrumented so every call is counted.
package resolvex
