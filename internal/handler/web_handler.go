package handler

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// WebHandler serves the built front-end assets from a directory. Directories
// are served only through their index.html; listings are never produced.
type WebHandler struct {
	root  fs.FS
	files http.Handler
}

func NewWebHandler(root string) *WebHandler {
	fsys := os.DirFS(root)
	return &WebHandler{root: fsys, files: http.FileServerFS(fsys)}
}

func (h *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "."
	}

	info, err := fs.Stat(h.root, name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			writeError(w, err)
			return
		}
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		if _, err := fs.Stat(h.root, path.Join(name, "index.html")); err != nil {
			http.NotFound(w, r)
			return
		}
	}

	h.files.ServeHTTP(w, r)
}
