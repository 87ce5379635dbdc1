package descriptor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// componentTypeFilter is the Component Type attribute value that marks
// the filter system description.
const componentTypeFilter = "Filter"

// Logger defines the logging interface used by the Loader.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Loader loads device description files from disk.
type Loader struct {
	logger Logger
}

// NewLoader creates a new device description loader.
func NewLoader() *Loader {
	return &Loader{logger: noopLogger{}}
}

// SetLogger sets the logger for the loader.
func (l *Loader) SetLogger(logger Logger) {
	if logger != nil {
		l.logger = logger
	}
}

// Load parses the device description at the given path.
//
// Returns ErrNotFound if the file does not exist, ErrMalformed if it is
// not well-formed XML, and ErrMissingComponent/ErrMissingRange when the
// expected fields are absent.
func (l *Loader) Load(path string) (*Description, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening device description: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	desc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	desc.Path = path

	l.logger.Debug("device description loaded",
		"path", path,
		"system", desc.SystemName,
		"gratings", len(desc.Gratings),
	)
	return desc, nil
}

// LoadDir scans a directory for *.xml device descriptions and loads one.
//
// This is the fallback used when no explicit path is configured. Zero
// candidates is ErrNotFound. More than one candidate is recoverable: the
// first in sorted order is used and a warning is logged.
func (l *Loader) LoadDir(dir string) (*Description, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no *.xml files in %s", ErrNotFound, dir)
	}

	sort.Strings(matches)
	if len(matches) > 1 {
		l.logger.Warn("multiple device descriptions found, using first",
			"dir", dir,
			"candidates", strings.Join(matches, ", "),
			"selected", matches[0],
		)
	}

	return l.Load(matches[0])
}

// gratingXML mirrors the subset of the Grating element that is consumed.
// Pointer fields distinguish absent leaves from zero values.
type gratingXML struct {
	Range *struct {
		RegLower *float64 `xml:"RegLower"`
		RegUpper *float64 `xml:"RegUpper"`
		ExtLower *float64 `xml:"ExtLower"`
		ExtUpper *float64 `xml:"ExtUpper"`
	} `xml:"Range"`
}

// Parse reads a device description document from r.
//
// The document is walked token by token so the surrounding vendor schema
// can vary freely: only Component Type="Filter" and Grating/Range
// elements are interpreted, everything else is skipped.
func Parse(r io.Reader) (*Description, error) {
	dec := xml.NewDecoder(r)
	desc := &Description{}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "Component":
			if desc.SystemName == "" && attrValue(start, "Type") == componentTypeFilter {
				desc.SystemName = attrValue(start, "Id")
			}
		case "Grating":
			g, err := decodeGrating(dec, &start, len(desc.Gratings))
			if err != nil {
				return nil, err
			}
			desc.Gratings = append(desc.Gratings, g)
		}
	}

	if desc.SystemName == "" {
		return nil, ErrMissingComponent
	}
	return desc, nil
}

// decodeGrating consumes one Grating subtree and extracts its ranges.
func decodeGrating(dec *xml.Decoder, start *xml.StartElement, index int) (GratingRange, error) {
	var raw gratingXML
	if err := dec.DecodeElement(&raw, start); err != nil {
		return GratingRange{}, fmt.Errorf("%w: grating %d: %w", ErrMalformed, index, err)
	}

	if raw.Range == nil {
		return GratingRange{}, fmt.Errorf("%w: grating %d has no Range element", ErrMissingRange, index)
	}
	rng := raw.Range
	if rng.RegLower == nil || rng.RegUpper == nil || rng.ExtLower == nil || rng.ExtUpper == nil {
		return GratingRange{}, fmt.Errorf("%w: grating %d", ErrMissingRange, index)
	}

	return GratingRange{
		Index:    index,
		Regular:  Range{Lower: *rng.RegLower, Upper: *rng.RegUpper},
		Extended: Range{Lower: *rng.ExtLower, Upper: *rng.ExtUpper},
	}, nil
}

// attrValue returns the value of the named attribute, or "" when absent.
func attrValue(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
