package native

// Status is the result code returned by every RNG library entry point.
// Values mirror the vendor ABI and are stable across releases.
type Status int32

const (
	StatusSuccess                 Status = 0
	StatusVersionMismatch         Status = 100
	StatusNotInitialized          Status = 101
	StatusAllocationFailed        Status = 102
	StatusTypeError               Status = 103
	StatusOutOfRange              Status = 104
	StatusLengthNotMultiple       Status = 105
	StatusDoublePrecisionRequired Status = 106
	StatusLaunchFailure           Status = 201
	StatusPreexistingFailure      Status = 202
	StatusInitializationFailed    Status = 203
	StatusArchMismatch            Status = 204
	StatusInternalError           Status = 999
)

// DeviceStatus is the result code returned by device runtime calls.
type DeviceStatus int32

const (
	DeviceSuccess                   DeviceStatus = 0
	DeviceErrorInvalidValue         DeviceStatus = 1
	DeviceErrorMemoryAllocation     DeviceStatus = 2
	DeviceErrorInvalidDevice        DeviceStatus = 101
	DeviceErrorLaunchOutOfResources DeviceStatus = 701
	DeviceErrorNotPermitted         DeviceStatus = 800
	DeviceErrorIncompatibleContext  DeviceStatus = 803
)
