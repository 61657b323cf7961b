package texty

// Environment is probed once by Detect to decide what the facade may do.
type Environment interface {
	// FieldSelectionStart reports whether text fields expose cursor
	// offsets. Without it the whole facade is unsupported.
	FieldSelectionStart() bool

	// WindowSelection reports whether a live selection service exists.
	WindowSelection() bool

	// DocumentSelection reports whether a legacy document-level selection
	// service exists.
	DocumentSelection() bool

	// DocumentMode is the legacy document compatibility mode, or 0 when
	// the host has none. Legacy modes report field buffers with "\r\n"
	// line breaks.
	DocumentMode() int
}

// Capabilities are the detected features of an environment. The value is
// computed once and copied into every Texty built from it.
type Capabilities struct {
	HasSelectionStart    bool `json:"has_selection_start"    yaml:"has_selection_start"`
	HasWindowSelection   bool `json:"has_window_selection"   yaml:"has_window_selection"`
	HasDocumentSelection bool `json:"has_document_selection" yaml:"has_document_selection"`
	HasProperLines       bool `json:"has_proper_lines"       yaml:"has_proper_lines"`
}

// Detect probes env.
func Detect(env Environment) Capabilities {
	return Capabilities{
		HasSelectionStart:    env.FieldSelectionStart(),
		HasWindowSelection:   env.WindowSelection(),
		HasDocumentSelection: env.DocumentSelection(),
		HasProperLines:       env.DocumentMode() == 0,
	}
}

// Supported reports whether the minimum capability is present.
func (c Capabilities) Supported() bool {
	return c.HasSelectionStart
}

// StaticEnvironment is an Environment with fixed answers.
type StaticEnvironment struct {
	SelectionStart    bool
	Window            bool
	Document          bool
	CompatibilityMode int
}

// Modern returns an environment with a live selection service and no
// legacy quirks.
func Modern() StaticEnvironment {
	return StaticEnvironment{SelectionStart: true, Window: true}
}

// FieldSelectionStart implements Environment.
func (e StaticEnvironment) FieldSelectionStart() bool { return e.SelectionStart }

// WindowSelection implements Environment.
func (e StaticEnvironment) WindowSelection() bool { return e.Window }

// DocumentSelection implements Environment.
func (e StaticEnvironment) DocumentSelection() bool { return e.Document }

// DocumentMode implements Environment.
func (e StaticEnvironment) DocumentMode() int { return e.CompatibilityMode }
