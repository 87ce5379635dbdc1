package filter

import "strconv"

// Status is a PE_STATUS return value from the native PE_Filter SDK.
// Zero means success; every other value is a failure category.
type Status int

// PE_STATUS constants from PE_Filter.h.
const (
	StatusSuccess                  Status = 0
	StatusInvalidHandle            Status = 1
	StatusFailure                  Status = 2
	StatusMissingConfigFile        Status = 3
	StatusInvalidConfiguration     Status = 4
	StatusInvalidWavelength        Status = 5
	StatusMissingHarmonicFilter    Status = 6
	StatusInvalidFilter            Status = 7
	StatusUnknown                  Status = 8
	StatusInvalidGrating           Status = 9
	StatusInvalidBuffer            Status = 10
	StatusInvalidBufferSize        Status = 11
	StatusUnsupportedConfiguration Status = 12
	StatusNoFilterConnected        Status = 13
)

// statusText maps status codes to human-readable categories.
var statusText = map[Status]string{
	StatusSuccess:                  "success",
	StatusInvalidHandle:            "invalid handle",
	StatusFailure:                  "instrument communication failure",
	StatusMissingConfigFile:        "configuration file missing",
	StatusInvalidConfiguration:     "configuration file corrupted",
	StatusInvalidWavelength:        "wavelength out of bounds",
	StatusMissingHarmonicFilter:    "harmonic filter missing",
	StatusInvalidFilter:            "invalid filter",
	StatusUnknown:                  "unknown failure",
	StatusInvalidGrating:           "invalid grating specified",
	StatusInvalidBuffer:            "invalid buffer",
	StatusInvalidBufferSize:        "invalid buffer size",
	StatusUnsupportedConfiguration: "unsupported configuration",
	StatusNoFilterConnected:        "no filter connected",
}

// String returns the human-readable category for the status.
// Codes the SDK may add in future print as "status N".
func (s Status) String() string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return "status " + strconv.Itoa(int(s))
}

// OK reports whether the status indicates success.
func (s Status) OK() bool {
	return s == StatusSuccess
}

// checkStatus converts a non-success status into a *StatusError naming
// the native operation that failed. Returns nil on success.
func checkStatus(op string, s Status) error {
	if s.OK() {
		return nil
	}
	return &StatusError{Op: op, Status: s}
}
