// Package rest provides the HTTP transport shared by all Paycon API clients.
//
// It owns three concerns:
//
//   - Request plumbing: JSON encoding, the "Token <value>" authorization
//     header, per-request correlation IDs, and context-aware execution.
//   - The credential type: an opaque bearer token passed explicitly into
//     every call. There is no ambient token state anywhere in the module.
//   - The error taxonomy: every failed call returns exactly one of
//     *NetworkError (transport failure, no response), *AuthError (credential
//     missing or rejected), *ValidationError (field-keyed rejection), or
//     *ServiceError (any other non-2xx). Callers dispatch with errors.As.
//
// No retries: every failure is terminal for that call and requires explicit
// re-submission by the caller.
package rest
