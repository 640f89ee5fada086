package irrigation

import "github.com/juan-moncayo/paycon-go/internal/device"

// ResolveDeviceChoices returns the devices a schedule or log screen
// offers for selection. An account with a default device gets exactly
// that device, regardless of what else is registered; otherwise the
// full list is offered as is.
func ResolveDeviceChoices(defaultDevice *device.Device, all []device.Device) []device.Device {
	if defaultDevice != nil {
		return []device.Device{*defaultDevice}
	}
	return all
}
