package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// StaticHandler serves the SPA assets: any path that is not a real
// file under the static root falls back to index.html.
type StaticHandler struct {
	root string
}

func NewStaticHandler(root string) *StaticHandler {
	return &StaticHandler{root: root}
}

func (h *StaticHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(filepath.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "index.html"
	}

	full := filepath.Join(h.root, name)
	if info, err := os.Stat(full); err != nil || info.IsDir() {
		full = filepath.Join(h.root, "index.html")
	}

	// index.html must not be cached so deploys take effect immediately.
	w.Header().Set("Cache-Control", "max-age=0")
	http.ServeFile(w, r, full)
}
