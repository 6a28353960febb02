package render

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/vk/flowgrid/internal/ctxlog"
)

// DefaultRenderTimeout bounds a single rasterizer invocation. On expiry
// the process is killed, never left to leak.
const DefaultRenderTimeout = 30 * time.Second

// Subprocess renders by spawning an external rasterizer per request and
// speaking line-delimited JSON over its standard pipes: one request line
// on stdin, one response line on stdout.
type Subprocess struct {
	// Command and Args name the rasterizer binary, e.g. "python3" with
	// the render script path.
	Command string
	Args    []string
	// Timeout overrides DefaultRenderTimeout when positive.
	Timeout time.Duration
}

// Render implements Renderer. Every failure mode — spawn error, non-zero
// exit, timeout, malformed output, renderer-reported error — wraps
// ErrRender.
func (p *Subprocess) Render(ctx context.Context, req Request) (string, error) {
	logger := ctxlog.FromContext(ctx)

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("%w: encoding request: %v", ErrRender, err)
	}
	payload = append(payload, '\n')

	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	cmd.Stdin = bytes.NewReader(payload)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("%w: starting %s: %v", ErrRender, p.Command, err)
	}

	line, readErr := bufio.NewReaderSize(stdout, 1<<20).ReadBytes('\n')
	waitErr := cmd.Wait()
	if waitErr != nil {
		logger.Warn("Renderer subprocess failed.", "command", p.Command, "error", waitErr)
		return "", fmt.Errorf("%w: %v", ErrRender, waitErr)
	}
	if len(line) == 0 && readErr != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrRender, readErr)
	}

	var resp Response
	if err := json.Unmarshal(bytes.TrimSpace(line), &resp); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", ErrRender, err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("%w: %s", ErrRender, resp.Error)
	}
	if resp.Image == "" {
		return "", fmt.Errorf("%w: response carries neither image nor error", ErrRender)
	}
	return resp.Image, nil
}
