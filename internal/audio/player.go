package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Player renders a cue. Implementations may block for the tone's duration.
type Player interface {
	Play(ctx context.Context, cue Cue) error
}

// request is written to the command's stdin for players that prefer JSON
// over argv placeholders.
type request struct {
	Cue        string `json:"cue"`
	Frequency  int    `json:"frequency"`
	DurationMs int64  `json:"duration_ms"`
}

// CommandPlayer plays a cue by running an external program. The argv
// template may contain {freq}, {ms} and {sec}.
type CommandPlayer struct {
	argv    []string
	timeout time.Duration
}

// NewCommandPlayer creates a CommandPlayer. Each run is killed after timeout.
func NewCommandPlayer(argv []string, timeout time.Duration) *CommandPlayer {
	return &CommandPlayer{
		argv:    argv,
		timeout: timeout,
	}
}

// Args returns the argv for cue with placeholders substituted.
func (p *CommandPlayer) Args(cue Cue) []string {
	tone := cue.Tone()
	r := strings.NewReplacer(
		"{freq}", strconv.Itoa(tone.Frequency),
		"{ms}", strconv.FormatInt(tone.Duration.Milliseconds(), 10),
		"{sec}", strconv.FormatFloat(tone.Duration.Seconds(), 'f', 3, 64),
	)

	args := make([]string, len(p.argv))
	for i, a := range p.argv {
		args[i] = r.Replace(a)
	}
	return args
}

// Play runs the command for cue.
func (p *CommandPlayer) Play(ctx context.Context, cue Cue) error {
	if len(p.argv) == 0 {
		return errors.New("no audio command configured")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := p.Args(cue)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	tone := cue.Tone()
	reqJSON, err := json.Marshal(request{
		Cue:        cue.String(),
		Frequency:  tone.Frequency,
		DurationMs: tone.Duration.Milliseconds(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cue: %w", err)
	}
	cmd.Stdin = bytes.NewReader(reqJSON)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("audio command timeout after %s", p.timeout)
	}

	if err != nil {
		if s := stderr.String(); s != "" {
			return fmt.Errorf("audio command failed: %w, stderr: %s", err, s)
		}
		return fmt.Errorf("audio command failed: %w", err)
	}

	return nil
}
