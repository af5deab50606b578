package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"

	"git.home.luguber.info/inful/sitebuilder/internal/assets"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/quota"
)

// handleAssetUpload accepts a multipart upload under the form field "file"
// and responds with the minted asset URL. Uploads over the plan's asset size
// limit are rejected before anything is stored.
func (s *Server) handleAssetUpload(w http.ResponseWriter, r *http.Request) {
	if max := s.limits.MaxAssetBytes; max > 0 {
		// allow some slack for the multipart framing
		r.Body = http.MaxBytesReader(w, r.Body, max+64*1024)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "asset too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	if err := s.limits.CheckAssetSize(header.Size); err != nil {
		var le *quota.LimitError
		if errors.As(err, &le) {
			http.Error(w, le.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	url, err := s.assets.Put(r.Context(), header.Filename, file)
	if err != nil {
		s.logger.Error("asset upload failed", logfields.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// handleAsset serves a stored asset by its minted URL. Content is addressed
// by hash, so responses are immutable.
func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	rc, err := s.assets.Open(r.Context(), r.URL.Path)
	if err != nil {
		if assets.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("asset read failed", logfields.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = rc.Close() }()

	if ct := mime.TypeByExtension(path.Ext(r.URL.Path)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	_, _ = io.Copy(w, rc)
}
