// Package api implements the HTTP handlers, request/response models, and
// error mapping for the public endpoints: document generation, stateful
// chat, and stateless chat. Handlers validate input, delegate to the
// corresponding service, and translate domain errors into sanitized JSON
// error responses carrying a trace ID.
package api
