package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// sampleXML mirrors the shape of a vendor device description file.
const sampleXML = `<?xml version="1.0" encoding="utf-8"?>
<System>
  <Component Type="Controller" Id="CTRL-1"/>
  <Component Type="Filter" Id="M000010263"/>
  <Grating>
    <Range>
      <RegLower>400</RegLower>
      <RegUpper>700</RegUpper>
      <ExtLower>380</ExtLower>
      <ExtUpper>720</ExtUpper>
    </Range>
  </Grating>
  <Grating>
    <Range>
      <RegLower>650</RegLower>
      <RegUpper>1000</RegUpper>
      <ExtLower>630</ExtLower>
      <ExtUpper>1050</ExtUpper>
    </Range>
  </Grating>
</System>`

func TestParse(t *testing.T) {
	desc, err := Parse(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if desc.SystemName != "M000010263" {
		t.Errorf("SystemName = %q, want %q", desc.SystemName, "M000010263")
	}
	if len(desc.Gratings) != 2 {
		t.Fatalf("len(Gratings) = %d, want 2", len(desc.Gratings))
	}

	g0 := desc.Gratings[0]
	if g0.Index != 0 {
		t.Errorf("Gratings[0].Index = %d, want 0", g0.Index)
	}
	if g0.Regular != (Range{Lower: 400, Upper: 700}) {
		t.Errorf("Gratings[0].Regular = %+v, want {400 700}", g0.Regular)
	}
	if g0.Extended != (Range{Lower: 380, Upper: 720}) {
		t.Errorf("Gratings[0].Extended = %+v, want {380 720}", g0.Extended)
	}

	g1 := desc.Gratings[1]
	if g1.Index != 1 {
		t.Errorf("Gratings[1].Index = %d, want 1", g1.Index)
	}
	if g1.Regular != (Range{Lower: 650, Upper: 1000}) {
		t.Errorf("Gratings[1].Regular = %+v, want {650 1000}", g1.Regular)
	}
}

func TestParseSkipsUnknownElements(t *testing.T) {
	// Vendor files carry plenty of elements the loader does not consume.
	input := `<System>
  <Firmware Version="2.1"/>
  <Component Type="Filter" Id="SYS-1">
    <Serial>12345</Serial>
  </Component>
  <Calibration><Point nm="500"/></Calibration>
  <Grating>
    <Motor Steps="20000"/>
    <Range>
      <RegLower>400</RegLower>
      <RegUpper>700</RegUpper>
      <ExtLower>380</ExtLower>
      <ExtUpper>720</ExtUpper>
    </Range>
  </Grating>
</System>`

	desc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if desc.SystemName != "SYS-1" {
		t.Errorf("SystemName = %q, want %q", desc.SystemName, "SYS-1")
	}
	if len(desc.Gratings) != 1 {
		t.Errorf("len(Gratings) = %d, want 1", len(desc.Gratings))
	}
}

func TestParseFirstFilterComponentWins(t *testing.T) {
	input := `<System>
  <Component Type="Filter" Id="FIRST"/>
  <Component Type="Filter" Id="SECOND"/>
</System>`

	desc, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if desc.SystemName != "FIRST" {
		t.Errorf("SystemName = %q, want %q", desc.SystemName, "FIRST")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "no filter component",
			input:   `<System><Component Type="Controller" Id="C-1"/></System>`,
			wantErr: ErrMissingComponent,
		},
		{
			name:    "empty document",
			input:   ``,
			wantErr: ErrMissingComponent,
		},
		{
			name:    "malformed xml",
			input:   `<System><Component Type="Filter" Id="S-1">`,
			wantErr: ErrMalformed,
		},
		{
			name: "grating without range",
			input: `<System>
  <Component Type="Filter" Id="S-1"/>
  <Grating><Motor Steps="1"/></Grating>
</System>`,
			wantErr: ErrMissingRange,
		},
		{
			name: "range missing leaf",
			input: `<System>
  <Component Type="Filter" Id="S-1"/>
  <Grating>
    <Range>
      <RegLower>400</RegLower>
      <RegUpper>700</RegUpper>
      <ExtLower>380</ExtLower>
    </Range>
  </Grating>
</System>`,
			wantErr: ErrMissingRange,
		},
		{
			name: "non-numeric bound",
			input: `<System>
  <Component Type="Filter" Id="S-1"/>
  <Grating>
    <Range>
      <RegLower>abc</RegLower>
      <RegUpper>700</RegUpper>
      <ExtLower>380</ExtLower>
      <ExtUpper>720</ExtUpper>
    </Range>
  </Grating>
</System>`,
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "device.xml")
	if err := os.WriteFile(path, []byte(sampleXML), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	desc, err := NewLoader().Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if desc.SystemName != "M000010263" {
		t.Errorf("SystemName = %q, want %q", desc.SystemName, "M000010263")
	}
	if desc.Path != path {
		t.Errorf("Path = %q, want %q", desc.Path, path)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := NewLoader().Load(filepath.Join(t.TempDir(), "missing.xml"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoadDir(t *testing.T) {
	t.Run("single file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "device.xml")
		if err := os.WriteFile(path, []byte(sampleXML), 0o600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		desc, err := NewLoader().LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() error = %v", err)
		}
		if desc.Path != path {
			t.Errorf("Path = %q, want %q", desc.Path, path)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := NewLoader().LoadDir(t.TempDir())
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("LoadDir() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("multiple files uses first sorted", func(t *testing.T) {
		dir := t.TempDir()
		first := filepath.Join(dir, "a_device.xml")
		second := filepath.Join(dir, "b_device.xml")
		firstXML := strings.Replace(sampleXML, "M000010263", "FIRST", 1)
		secondXML := strings.Replace(sampleXML, "M000010263", "SECOND", 1)
		if err := os.WriteFile(first, []byte(firstXML), 0o600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}
		if err := os.WriteFile(second, []byte(secondXML), 0o600); err != nil {
			t.Fatalf("writing fixture: %v", err)
		}

		loader := NewLoader()
		log := &captureLogger{}
		loader.SetLogger(log)

		desc, err := loader.LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() error = %v", err)
		}
		if desc.SystemName != "FIRST" {
			t.Errorf("SystemName = %q, want %q", desc.SystemName, "FIRST")
		}
		if len(log.warnings) != 1 {
			t.Errorf("warnings = %d, want 1", len(log.warnings))
		}
	})
}

func TestRangeContains(t *testing.T) {
	r := Range{Lower: 400, Upper: 700}

	tests := []struct {
		nm   float64
		want bool
	}{
		{400, true},
		{700, true},
		{550, true},
		{399.999, false},
		{700.001, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.nm); got != tt.want {
			t.Errorf("Contains(%g) = %v, want %v", tt.nm, got, tt.want)
		}
	}
}

func TestRangeString(t *testing.T) {
	r := Range{Lower: 400, Upper: 700}
	if got := r.String(); got != "400-700 nm" {
		t.Errorf("String() = %q, want %q", got, "400-700 nm")
	}

	r = Range{Lower: 632.8, Upper: 1000.5}
	if got := r.String(); got != "632.8-1000.5 nm" {
		t.Errorf("String() = %q, want %q", got, "632.8-1000.5 nm")
	}
}

func TestCloneGratings(t *testing.T) {
	desc := &Description{
		SystemName: "S-1",
		Gratings: []GratingRange{
			{Index: 0, Regular: Range{Lower: 400, Upper: 700}},
		},
	}

	clone := desc.CloneGratings()
	clone[0].Regular.Lower = 1

	if desc.Gratings[0].Regular.Lower != 400 {
		t.Error("modifying the clone changed the original description")
	}

	empty := &Description{}
	if got := empty.CloneGratings(); got != nil {
		t.Errorf("CloneGratings() on empty description = %v, want nil", got)
	}
}

// captureLogger records log calls for assertions.
type captureLogger struct {
	warnings []string
}

func (l *captureLogger) Debug(string, ...any) {}
func (l *captureLogger) Info(string, ...any)  {}
func (l *captureLogger) Warn(msg string, _ ...any) {
	l.warnings = append(l.warnings, msg)
}
func (l *captureLogger) Error(string, ...any) {}
