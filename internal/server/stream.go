package server

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"gocv.io/x/gocv"
)

// streamInterval paces the MJPEG stream at roughly 15 FPS.
const streamInterval = 66 * time.Millisecond

// FrameBuffer holds the most recent JPEG-encoded frame for streaming.
// The game loop publishes into it; stream clients only ever read.
type FrameBuffer struct {
	mu      sync.RWMutex
	jpeg    []byte
	seq     uint64
	viewers atomic.Int32
}

// NewFrameBuffer returns an empty FrameBuffer.
func NewFrameBuffer() *FrameBuffer {
	return &FrameBuffer{}
}

// Wanted reports whether any stream client is connected. Publishers use it
// to skip encoding when nobody is watching.
func (b *FrameBuffer) Wanted() bool {
	return b.viewers.Load() > 0
}

// Publish encodes frame as JPEG and makes it the latest frame.
func (b *FrameBuffer) Publish(frame gocv.Mat) error {
	if frame.Empty() {
		return nil
	}
	buf, err := gocv.IMEncode(".jpg", frame)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	b.Set(bytes.Clone(buf.GetBytes()))
	return nil
}

// Set stores an already encoded JPEG as the latest frame.
func (b *FrameBuffer) Set(jpeg []byte) {
	b.mu.Lock()
	b.jpeg = jpeg
	b.seq++
	b.mu.Unlock()
}

// Latest returns the latest frame and its sequence number. The sequence is
// zero until the first frame is set.
func (b *FrameBuffer) Latest() ([]byte, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.jpeg, b.seq
}

// StreamHandler serves MJPEG frames from a FrameBuffer.
type StreamHandler struct {
	frames *FrameBuffer
}

// NewStreamHandler creates a new StreamHandler reading from frames.
func NewStreamHandler(frames *FrameBuffer) *StreamHandler {
	return &StreamHandler{frames: frames}
}

// ServeHTTP streams MJPEG frames to connected clients.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	h.frames.viewers.Add(1)
	defer h.frames.viewers.Add(-1)

	ticker := time.NewTicker(streamInterval)
	defer ticker.Stop()

	var sent uint64
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		jpeg, seq := h.frames.Latest()
		if seq == 0 || seq == sent {
			continue
		}
		sent = seq

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", len(jpeg))
		if _, err := w.Write(jpeg); err != nil {
			return
		}
		fmt.Fprintf(w, "\r\n")

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
	}
}
