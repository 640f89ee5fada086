// Package telemetry retrieves sensor readings for registered devices.
//
// Readings come from two sources. The Client fetches the stored history
// over the REST API, newest first. The Poller re-fetches that history on
// a fixed interval and hands each snapshot to a callback, cancelling any
// still-running fetch before starting the next one. For devices that
// carry a broker descriptor, the LiveFeed subscribes to the device's
// topic and decodes readings as they are published.
package telemetry
