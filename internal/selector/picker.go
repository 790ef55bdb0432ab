package selector

// FileRequest describes an open-file picker invocation.
type FileRequest struct {
	Caption string
	Start   Path
	Filter  ExtensionFilter
}

// DirectoryRequest describes a directory picker invocation. Pickers list
// directories only and must not resolve symlinks in the returned path.
type DirectoryRequest struct {
	Caption string
	Start   Path
}

// SaveRequest describes a save-file picker invocation.
type SaveRequest struct {
	Caption   string
	Start     Path
	Extension string // e.g. ".csv"
}

// Picker is the platform file dialog. Every call is modal and reports its
// result through done; ok is false when the user cancelled. Implementations
// call done on the UI goroutine.
type Picker interface {
	OpenFile(req FileRequest, done func(path string, ok bool))
	OpenFiles(req FileRequest, done func(paths []string, ok bool))
	OpenDirectory(req DirectoryRequest, done func(path string, ok bool))
	SaveFile(req SaveRequest, done func(path string, ok bool))
}

// Label displays the current selection.
type Label interface {
	SetText(text string)
}

type nopLabel struct{}

func (nopLabel) SetText(string) {}
