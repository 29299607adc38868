package http

import (
	"encoding/json"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/study-link/studylink/internal/storage"
)

// MountAssets wires the media endpoints: uploads land under a caller-chosen
// key, reads stream whatever follows /assets/.
func MountAssets(r chi.Router, bs storage.BlobStore) {
	// POST /assets/{kind} with multipart file= (book covers, attachments)
	r.Post("/{kind}", func(w http.ResponseWriter, r *http.Request) {
		kind := chi.URLParam(r, "kind")
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", 400)
			return
		}
		defer f.Close()

		name := path.Base(hdr.Filename)
		if name == "." || name == "/" {
			name = "upload.bin"
		}
		key, err := bs.Put(kind+"/"+name, f)
		if err != nil {
			http.Error(w, "store error: "+err.Error(), 500)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"key": key})
	})

	// GET /assets/* streams the blob at whatever follows /assets/
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, err := bs.Get(key)
		if err != nil {
			http.Error(w, "not found", 404)
			return
		}
		defer rc.Close()
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = io.Copy(w, rc)
	})
}
