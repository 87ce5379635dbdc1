// Package descriptor loads LLTF device description files.
//
// Every NKT Photonics LLTF filter ships with an XML device description
// (e.g. M000010263.xml) that identifies the system and lists the
// wavelength ranges of each installed grating. This package parses those
// files into immutable Go values consumed by the filter controller.
//
// # File shape
//
// Only a small part of the vendor schema is read:
//
//	<... >
//	  <Component Type="Filter" Id="M000010263">...</Component>
//	  <Grating>
//	    <Range>
//	      <RegLower>400</RegLower>
//	      <RegUpper>700</RegUpper>
//	      <ExtLower>380</ExtLower>
//	      <ExtUpper>720</ExtUpper>
//	    </Range>
//	  </Grating>
//	  ...
//	</...>
//
// Unknown elements and attributes are ignored. Grating indices follow
// document order, starting at 0, and the order is preserved: grating
// auto-selection is order-sensitive (first configured grating wins).
//
// # Usage
//
//	loader := descriptor.NewLoader()
//	desc, err := loader.Load("xml_files/M000010263.xml")
//
// When no explicit path is available, LoadDir scans a directory for
// *.xml candidates. Multiple candidates are not fatal: the first in
// sorted order is used and a warning is logged.
package descriptor
