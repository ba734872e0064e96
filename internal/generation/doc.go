// Package generation contains the request dispatch engine of the helper API.
//
// It turns typed content-generation requests into prompts and configuration
// for the Gemini backend and normalizes the raw results into the response
// contract. The package owns the closed set of request kinds, the persona
// (system instruction) resolution rules, the structured-output schemas and
// their per-kind normalization, the text metrics estimator, and the
// composite-document pipeline that assembles multi-section documents from
// generated, literal and file-derived parts.
//
// The external model is consumed through the Backend interface so the engine
// can be exercised in tests without network access.
package generation
