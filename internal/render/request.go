package render

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/vk/flowgrid/internal/frame"
)

// Request describes one chart rasterization. Field order is load-bearing:
// json.Marshal emits struct fields in declaration order, which is what
// makes the hash canonical.
type Request struct {
	ChartType string      `json:"chartType"`
	XAxis     string      `json:"xAxis"`
	YAxis     string      `json:"yAxis"`
	ColorBy   string      `json:"colorBy,omitempty"`
	Data      []frame.Row `json:"data"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Format    string      `json:"format"`
}

// Response is the renderer's answer: exactly one of Image or Error.
type Response struct {
	Image string `json:"image,omitempty"`
	Error string `json:"error,omitempty"`
}

// Normalize applies the renderer's documented defaults before hashing, so
// requests that the renderer would treat identically share a cache key.
func (r Request) Normalize() Request {
	if r.Format != "png" && r.Format != "svg" {
		r.Format = "png"
	}
	if r.Width <= 0 {
		r.Width = 800
	}
	if r.Height <= 0 {
		r.Height = 500
	}
	return r
}

// Key returns the content hash of the normalized request: hex SHA-256 of
// its canonical JSON.
func (r Request) Key() string {
	payload, err := json.Marshal(r.Normalize())
	if err != nil {
		// Row cells are JSON scalars; marshal cannot fail for them. Guard
		// anyway so an exotic cell degrades to a distinct key, not a panic.
		payload = []byte(err.Error())
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
