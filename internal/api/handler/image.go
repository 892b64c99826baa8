package handler

import (
	"errors"
	"net/http"

	"github.com/mememaster/lobby/internal/api/response"
	"github.com/mememaster/lobby/internal/images"
)

// ImageHandler serves meme source images for the game phase
type ImageHandler struct {
	fetcher *images.Fetcher
}

// NewImageHandler creates an image handler
func NewImageHandler(fetcher *images.Fetcher) *ImageHandler {
	return &ImageHandler{fetcher: fetcher}
}

// Random handles GET /api/v1/images/random
func (h *ImageHandler) Random(w http.ResponseWriter, r *http.Request) {
	dataURL, err := h.fetcher.Random(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ImageResponse{DataURL: dataURL})
}

// Upload handles POST /api/v1/images: the raw image body comes back as a
// data URL ready to render.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	dataURL, err := images.EncodeDataURL(r.Body)
	if err != nil {
		switch {
		case errors.Is(err, images.ErrNotAnImage):
			WriteError(w, NewInvalidRequestError("Body is not an image"))
		case errors.Is(err, images.ErrImageTooLarge):
			WriteError(w, NewInvalidRequestError("Image exceeds size limit"))
		default:
			WriteError(w, err)
		}
		return
	}

	response.JSON(w, http.StatusOK, response.ImageResponse{DataURL: dataURL})
}
