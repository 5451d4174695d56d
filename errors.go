package devrand

import "github.com/opd-ai/go-devrand/internal/native"

// ErrorKind discriminates the failure domains surfaced by this package.
type ErrorKind int

const (
	// KindRNGLibrary reports a non-success status from the vendor RNG
	// library.
	KindRNGLibrary ErrorKind = iota + 1
	// KindDeviceRuntime reports a non-success status from the device
	// runtime.
	KindDeviceRuntime
	// KindContract reports an argument violation detected before any
	// native call was made.
	KindContract
)

func (k ErrorKind) String() string {
	switch k {
	case KindRNGLibrary:
		return "rng library error"
	case KindDeviceRuntime:
		return "device runtime error"
	case KindContract:
		return "contract violation"
	}
	return "unknown error kind"
}

// Error is the one failure type returned by this package. Kind selects the
// failure domain, Call names the native call or entry point that failed,
// and Reason carries the decoded status identifier or the contract
// description. Code preserves the raw native status; it is zero for
// contract violations. Callers match with errors.As and switch on Kind.
type Error struct {
	Kind   ErrorKind
	Call   string
	Reason string
	Code   int32
}

func (e *Error) Error() string {
	if e.Kind == KindContract {
		return e.Call + ": " + e.Reason
	}
	return e.Call + " : " + e.Reason
}

// checkRNG converts a vendor library status into an error. call is
// recorded verbatim so the failing native call is always identifiable.
func checkRNG(call string, st native.Status) error {
	if st == native.StatusSuccess {
		return nil
	}
	return &Error{Kind: KindRNGLibrary, Call: call, Reason: decodeRNGStatus(st), Code: int32(st)}
}

// checkDevice converts a device runtime status into an error.
func checkDevice(call string, st native.DeviceStatus) error {
	if st == native.DeviceSuccess {
		return nil
	}
	return &Error{Kind: KindDeviceRuntime, Call: call, Reason: decodeDeviceStatus(st), Code: int32(st)}
}

func contractErr(call, reason string) error {
	return &Error{Kind: KindContract, Call: call, Reason: reason}
}
