package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// ExecSink drives an external elevator controller executable. Each
// dispatch runs the executable once with the request as JSON on stdin
// and expects a JSON Response on stdout.
type ExecSink struct {
	executable string
	timeoutMs  int
}

// NewExecSink creates an ExecSink for the given executable path with
// the specified per-dispatch timeout in milliseconds.
func NewExecSink(executable string, timeoutMs int) *ExecSink {
	return &ExecSink{
		executable: executable,
		timeoutMs:  timeoutMs,
	}
}

// Dispatch sends the request to the controller and interprets its
// acknowledgement.
func (s *ExecSink) Dispatch(req Request) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.timeoutMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.executable)

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal dispatch request: %w", err)
	}
	cmd.Stdin = bytes.NewReader(reqJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("controller timeout after %dms", s.timeoutMs)
	}

	if err != nil {
		if stderrStr := stderr.String(); stderrStr != "" {
			return fmt.Errorf("controller failed: %w, stderr: %s", err, stderrStr)
		}
		return fmt.Errorf("controller failed: %w", err)
	}

	var response Response
	if err := json.Unmarshal(stdout.Bytes(), &response); err != nil {
		return fmt.Errorf("parse controller response: %w, stdout: %s", err, stdout.String())
	}

	if !response.Success {
		return fmt.Errorf("controller rejected floor %s: %s", req.Floor, response.Error)
	}

	return nil
}
