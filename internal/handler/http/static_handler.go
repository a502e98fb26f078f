package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// StaticHandler serves the browser client from dir. Unknown non-API paths
// fall back to index.html so client-side routes survive a reload.
type StaticHandler struct {
	dir   string
	files http.Handler
}

func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{
		dir:   dir,
		files: http.FileServer(http.Dir(dir)),
	}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	if info, err := os.Stat(filepath.Join(h.dir, filepath.FromSlash(clean))); err == nil && !info.IsDir() {
		h.files.ServeHTTP(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}
