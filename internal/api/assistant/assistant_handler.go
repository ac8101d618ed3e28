package assistant

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/paulgosnell/liv-concierge/internal/api"
)

type Handler struct {
	assistantService Service
	logger           *slog.Logger
}

func NewHandler(assistantService Service, logger *slog.Logger) *Handler {
	return &Handler{
		assistantService: assistantService,
		logger:           logger,
	}
}

// StreamChat proxies one freeform concierge exchange as SSE text chunks.
// The scripted drafting dialogue never goes through here.
func (h *Handler) StreamChat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "StreamChat"))

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeSSEError(w, flusher, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.writeSSEError(w, flusher, "Message must not be empty")
		return
	}

	chunks := make(chan string, 8)
	errCh := make(chan error, 1)
	go func() {
		errCh <- h.assistantService.StreamChat(ctx, req, chunks)
	}()

	for {
		select {
		case chunk, ok := <-chunks:
			if !ok {
				if err := <-errCh; err != nil {
					l.ErrorContext(ctx, "Assistant stream failed", slog.Any("error", err))
					h.writeSSEError(w, flusher, "The concierge is unavailable right now")
					return
				}
				fmt.Fprintf(w, "event: done\ndata: {}\n\n")
				flusher.Flush()
				return
			}
			data, err := json.Marshal(map[string]string{"text": chunk})
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "id: %s\n", uuid.New())
			fmt.Fprintf(w, "event: chunk\n")
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()

		case <-ctx.Done():
			l.InfoContext(ctx, "Assistant stream client disconnected")
			return
		}
	}
}

func (h *Handler) writeSSEError(w http.ResponseWriter, flusher http.Flusher, errorMsg string) {
	payload, _ := json.Marshal(map[string]string{"error": errorMsg})
	fmt.Fprintf(w, "event: error\ndata: %s\n\n", payload)
	flusher.Flush()
}
