package devrand

import "github.com/opd-ai/go-devrand/internal/native"

// unknownStatus is the decoded form of any status value missing from the
// tables below. Raw codes are preserved on the Error so nothing is lost.
const unknownStatus = "<unknown>"

// rngStatusNames maps vendor RNG library statuses to their identifiers.
var rngStatusNames = map[native.Status]string{
	native.StatusSuccess:                 "RNG_STATUS_SUCCESS",
	native.StatusVersionMismatch:         "RNG_STATUS_VERSION_MISMATCH",
	native.StatusNotInitialized:          "RNG_STATUS_NOT_INITIALIZED",
	native.StatusAllocationFailed:        "RNG_STATUS_ALLOCATION_FAILED",
	native.StatusTypeError:               "RNG_STATUS_TYPE_ERROR",
	native.StatusOutOfRange:              "RNG_STATUS_OUT_OF_RANGE",
	native.StatusLengthNotMultiple:       "RNG_STATUS_LENGTH_NOT_MULTIPLE",
	native.StatusDoublePrecisionRequired: "RNG_STATUS_DOUBLE_PRECISION_REQUIRED",
	native.StatusLaunchFailure:           "RNG_STATUS_LAUNCH_FAILURE",
	native.StatusPreexistingFailure:      "RNG_STATUS_PREEXISTING_FAILURE",
	native.StatusInitializationFailed:    "RNG_STATUS_INITIALIZATION_FAILED",
	native.StatusArchMismatch:            "RNG_STATUS_ARCH_MISMATCH",
	native.StatusInternalError:           "RNG_STATUS_INTERNAL_ERROR",
}

// deviceStatusNames maps device runtime statuses to their identifiers. The
// runtime uses camel-case names, matching the vendor's convention.
var deviceStatusNames = map[native.DeviceStatus]string{
	native.DeviceSuccess:                   "devSuccess",
	native.DeviceErrorInvalidValue:         "devErrorInvalidValue",
	native.DeviceErrorMemoryAllocation:     "devErrorMemoryAllocation",
	native.DeviceErrorInvalidDevice:        "devErrorInvalidDevice",
	native.DeviceErrorLaunchOutOfResources: "devErrorLaunchOutOfResources",
	native.DeviceErrorNotPermitted:         "devErrorNotPermitted",
	native.DeviceErrorIncompatibleContext:  "devErrorIncompatibleContext",
}

func decodeRNGStatus(st native.Status) string {
	if name, ok := rngStatusNames[st]; ok {
		return name
	}
	return unknownStatus
}

func decodeDeviceStatus(st native.DeviceStatus) string {
	if name, ok := deviceStatusNames[st]; ok {
		return name
	}
	return unknownStatus
}
