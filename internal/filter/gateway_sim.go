package filter

import "math/rand/v2"

// defaultWavelengthNm is the baseline wavelength a simulated device
// reports before the first set.
const defaultWavelengthNm = 550.0

// simHandle is the single handle value a SimGateway hands out.
const simHandle Handle = 1

// SimGateway emulates an LLTF device in memory, with no hardware or
// native library access. It is used when the controller is initialized
// in simulation mode, and directly by tests.
//
// Measurement uncertainty is modelled as a fixed per-gateway offset drawn
// once at construction from a zero-mean normal distribution with standard
// deviation uncertaintyNm. Every set wavelength is stored with the offset
// already applied, so repeated set/get cycles within one session observe
// the same measured-minus-set difference. Zero uncertainty means a zero
// offset and exact readback.
//
// Like a real device handle, a SimGateway is owned by a single controller
// and is not safe for concurrent use.
type SimGateway struct {
	offsetNm     float64
	wavelengthNm float64
	systemName   string
	created      bool
	open         bool
}

// NewSimGateway creates a simulated gateway with the given measurement
// uncertainty in nanometres. The offset source is the shared math/rand/v2
// generator; use NewSimGatewayWithRand for a deterministic offset.
func NewSimGateway(uncertaintyNm float64) *SimGateway {
	return newSimGateway(uncertaintyNm, nil)
}

// NewSimGatewayWithRand creates a simulated gateway drawing its offset
// from the given generator. Intended for tests that need reproducibility.
func NewSimGatewayWithRand(uncertaintyNm float64, rng *rand.Rand) *SimGateway {
	return newSimGateway(uncertaintyNm, rng)
}

func newSimGateway(uncertaintyNm float64, rng *rand.Rand) *SimGateway {
	var offset float64
	if uncertaintyNm > 0 {
		if rng != nil {
			offset = rng.NormFloat64() * uncertaintyNm
		} else {
			offset = rand.NormFloat64() * uncertaintyNm
		}
	}
	return &SimGateway{
		offsetNm:     offset,
		wavelengthNm: defaultWavelengthNm,
	}
}

// OffsetNm returns the fixed per-session measurement offset.
func (s *SimGateway) OffsetNm() float64 {
	return s.offsetNm
}

// Create allocates the simulated resource.
func (s *SimGateway) Create(_ string) (Handle, Status, error) {
	s.created = true
	s.wavelengthNm = defaultWavelengthNm
	return simHandle, StatusSuccess, nil
}

// Open connects the simulated resource to the named system.
func (s *SimGateway) Open(h Handle, systemName string) (Status, error) {
	if st := s.check(h); !st.OK() {
		return st, nil
	}
	s.systemName = systemName
	s.open = true
	return StatusSuccess, nil
}

// SystemCount reports a single connected system.
func (s *SimGateway) SystemCount(h Handle) (int, error) {
	if st := s.check(h); !st.OK() {
		return 0, &StatusError{Op: "PE_GetSystemCount", Status: st}
	}
	return 1, nil
}

// Wavelength returns the simulated wavelength, offset already applied.
func (s *SimGateway) Wavelength(h Handle) (float64, Status, error) {
	if st := s.check(h); !st.OK() {
		return 0, st, nil
	}
	return s.wavelengthNm, StatusSuccess, nil
}

// SetWavelengthOnGrating records the new wavelength plus the fixed
// session offset. The grating index is accepted as-is; range checking is
// the controller's job, as it is with the real SDK.
func (s *SimGateway) SetWavelengthOnGrating(h Handle, _ int, nm float64) (Status, error) {
	if st := s.check(h); !st.OK() {
		return st, nil
	}
	s.wavelengthNm = nm + s.offsetNm
	return StatusSuccess, nil
}

// Close disconnects the simulated device.
func (s *SimGateway) Close(h Handle) (Status, error) {
	if st := s.check(h); !st.OK() {
		return st, nil
	}
	s.open = false
	return StatusSuccess, nil
}

// Destroy releases the simulated resource.
func (s *SimGateway) Destroy(h Handle) error {
	if h == simHandle {
		s.created = false
		s.open = false
	}
	return nil
}

// check validates the handle against the simulated resource state.
func (s *SimGateway) check(h Handle) Status {
	if h != simHandle || !s.created {
		return StatusInvalidHandle
	}
	return StatusSuccess
}
