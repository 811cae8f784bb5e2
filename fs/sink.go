// Package fs provides file-based persistence for collected links.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/linkcollect"
)

// DefaultFilename is the name of the saved link list.
const DefaultFilename = "links.json"

// DefaultPath returns DefaultFilename in the directory of the running
// executable, falling back to the working directory.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultFilename
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), DefaultFilename)
}

// Encode renders links as an indented JSON array of strings.
// Characters such as & and non-ASCII text are written as-is.
func Encode(links []string) ([]byte, error) {
	if links == nil {
		links = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(links); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ensure Sink implements linkcollect.LinkSink at compile time.
var _ linkcollect.LinkSink = (*Sink)(nil)

// Sink writes the link list to a single JSON file.
// Each Save replaces the file; a failed Save leaves the previous file intact.
type Sink struct {
	path string
}

// NewSink creates a new Sink that writes to path.
func NewSink(path string) *Sink {
	return &Sink{path: path}
}

// Path returns the file the sink writes to.
func (s *Sink) Path() string {
	return s.path
}

// Save writes links to a temporary file next to the target and renames it
// into place.
func (s *Sink) Save(ctx context.Context, links []string) error {
	if err := ctx.Err(); err != nil {
		return linkcollect.Errorf(linkcollect.ECANCELED, "save canceled: %v", err)
	}

	data, err := Encode(links)
	if err != nil {
		return linkcollect.Errorf(linkcollect.EPERSIST, "encoding links: %v", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+DefaultFilename+".*.tmp")
	if err != nil {
		return linkcollect.Errorf(linkcollect.EPERSIST, "%v", err)
	}
	// Removing after a successful rename fails harmlessly.
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return linkcollect.Errorf(linkcollect.EPERSIST, "%v", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return linkcollect.Errorf(linkcollect.EPERSIST, "%v", err)
	}
	if err := tmp.Close(); err != nil {
		return linkcollect.Errorf(linkcollect.EPERSIST, "%v", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return linkcollect.Errorf(linkcollect.EPERSIST, "%v", err)
	}

	return nil
}
