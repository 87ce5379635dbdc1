package filter

// SelectGrating returns the grating index to use for the wavelength.
//
// Selection is a deterministic, order-sensitive linear scan over the
// configured gratings:
//
//  1. The first grating whose regular range contains the wavelength wins.
//  2. Failing that, the first grating whose extended range contains it
//     wins, with a warning: the device still functions there but with
//     reduced guarantees.
//  3. Otherwise an *UnsupportedWavelengthError is returned whose message
//     enumerates every grating's regular range.
//
// Bounds are inclusive with no numeric tolerance. Ties between
// overlapping gratings go to the first configured one. Selection is pure
// configuration logic and needs no open session.
func (c *Controller) SelectGrating(nm float64) (int, error) {
	for _, g := range c.desc.Gratings {
		if g.Regular.Contains(nm) {
			return g.Index, nil
		}
	}

	for _, g := range c.desc.Gratings {
		if g.Extended.Contains(nm) {
			c.logger.Warn("wavelength in extended range",
				"wavelength_nm", nm,
				"grating", g.Index,
				"regular", g.Regular.String(),
				"extended", g.Extended.String(),
			)
			return g.Index, nil
		}
	}

	return 0, &UnsupportedWavelengthError{
		WavelengthNm: nm,
		Gratings:     c.desc.CloneGratings(),
	}
}
