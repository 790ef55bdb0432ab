package gui

import (
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"github.com/dbtoolbox/dbtoolbox/internal/logging"
	"github.com/dbtoolbox/dbtoolbox/internal/selector"
)

// dialogPicker implements selector.Picker with Fyne's file dialogs. Fyne
// dialogs cannot show a custom caption or multi-select; OpenFiles returns a
// single file.
type dialogPicker struct {
	window fyne.Window
	logger *logging.Logger
}

// NewPicker creates a picker that opens its dialogs over window.
func NewPicker(window fyne.Window, logger *logging.Logger) selector.Picker {
	if logger == nil {
		logger = logging.Nop()
	}
	return &dialogPicker{window: window, logger: logger.Component("picker")}
}

func (p *dialogPicker) OpenFile(req selector.FileRequest, done func(string, bool)) {
	p.logger.Debug().
		Str("caption", req.Caption).
		Str("filter", req.Filter.Pattern()).
		Msg("opening file dialog")
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			p.logger.Warn().Err(err).Msg("file dialog failed")
			done("", false)
			return
		}
		if reader == nil {
			done("", false)
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		done(path, true)
	}, p.window)

	if filter := extensionFilter(req.Filter); filter != nil {
		fd.SetFilter(filter)
	}
	p.seed(fd, req.Start.Dir(selector.KindFile))
	fd.Show()
}

func (p *dialogPicker) OpenFiles(req selector.FileRequest, done func([]string, bool)) {
	p.OpenFile(req, func(path string, ok bool) {
		if !ok {
			done(nil, false)
			return
		}
		done([]string{path}, true)
	})
}

func (p *dialogPicker) OpenDirectory(req selector.DirectoryRequest, done func(string, bool)) {
	p.logger.Debug().Str("caption", req.Caption).Msg("opening folder dialog")
	fd := dialog.NewFolderOpen(func(dir fyne.ListableURI, err error) {
		if err != nil {
			p.logger.Warn().Err(err).Msg("folder dialog failed")
			done("", false)
			return
		}
		if dir == nil {
			done("", false)
			return
		}
		done(dir.Path(), true)
	}, p.window)

	p.seed(fd, req.Start.Dir(selector.KindDirectory))
	fd.Show()
}

func (p *dialogPicker) SaveFile(req selector.SaveRequest, done func(string, bool)) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			p.logger.Warn().Err(err).Msg("save dialog failed")
			done("", false)
			return
		}
		if writer == nil {
			done("", false)
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()
		done(withExtension(path, req.Extension), true)
	}, p.window)

	if req.Extension != "" {
		fd.SetFilter(storage.NewExtensionFileFilter([]string{req.Extension}))
	}
	if start, ok := req.Start.Get(); ok {
		fd.SetFileName(filepath.Base(start))
	}
	p.seed(fd, req.Start.Dir(selector.KindFile))
	fd.Show()
}

// seed opens the dialog in dir when it can be listed.
func (p *dialogPicker) seed(fd *dialog.FileDialog, dir string) {
	if dir == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		p.logger.Debug().Err(err).Str("dir", dir).Msg("cannot start dialog in directory")
		return
	}
	fd.SetLocation(lister)
}

func extensionFilter(f selector.ExtensionFilter) storage.FileFilter {
	if len(f) == 0 {
		return nil
	}
	return storage.NewExtensionFileFilter(f)
}

// withExtension appends ext when path has no extension.
func withExtension(path, ext string) string {
	if ext == "" || filepath.Ext(path) != "" {
		return path
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path + ext
}
