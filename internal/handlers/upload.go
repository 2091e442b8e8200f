package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/lehigh-university-libraries/idcapture/internal/images"
	"github.com/lehigh-university-libraries/idcapture/internal/models"
)

func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes+1024*1024)

	file, header, err := r.FormFile("file")
	if err != nil {
		file, header, err = r.FormFile("files")
		if err != nil {
			h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxUploadBytes+1))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if int64(len(fileData)) > h.cfg.MaxUploadBytes {
		h.writeError(w, fmt.Sprintf("File too large (max %d bytes)", h.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}
	if len(fileData) == 0 {
		h.writeError(w, "File is empty", http.StatusBadRequest)
		return
	}

	imageFile := buildImageFile(fileData, header)
	session.Controller.SelectFile(imageFile)

	h.writeJSON(w, session.Snapshot())
}

func buildImageFile(data []byte, header *multipart.FileHeader) *models.ImageFile {
	return images.NewImageFile(header.Filename, header.Header.Get("Content-Type"), data)
}
