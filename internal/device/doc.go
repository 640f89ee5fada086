// Package device manages the registered irrigation devices.
//
// The Registry keeps a local snapshot of the account's devices and
// mirrors every mutation through the REST API, touching the snapshot
// only after the service has accepted the change. Destructive and
// sensitive operations pass through the Gate, which holds the requested
// action until a superuser credential check succeeds.
package device
