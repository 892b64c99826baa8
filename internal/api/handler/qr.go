package handler

import (
	"fmt"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/mememaster/lobby/internal/api/apierr"
	"github.com/mememaster/lobby/internal/lobby"
)

const qrSize = 256

// QRHandler renders join links as QR codes for the host screen
type QRHandler struct {
	mgr     *lobby.Manager
	baseURL string
}

// NewQRHandler creates a QR handler. baseURL is the externally reachable
// address guests scan, e.g. "http://192.168.1.10:8080".
func NewQRHandler(mgr *lobby.Manager, baseURL string) *QRHandler {
	return &QRHandler{mgr: mgr, baseURL: baseURL}
}

// Get handles GET /api/v1/rooms/{code}/qr.png
func (h *QRHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := roomCode(r)

	// Only advertise rooms that exist
	if _, err := h.mgr.GetRoom(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	joinURL := fmt.Sprintf("%s/join?code=%s", h.baseURL, code)
	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
	if err != nil {
		WriteError(w, apierr.NewInternalError())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
