// Package profile manages the signed-in account's profile data.
//
// The Manager exposes two views the service keeps separate: the
// editable contact profile and the account view, which carries the
// default device used to preselect a device elsewhere. It also resolves
// the numeric account ID that device registration needs.
package profile
