package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/brickuv/pkg/observability"
)

// elapsedAfter is how long a spinner runs before it starts showing elapsed time.
const elapsedAfter = 2 * time.Second

// Spinner provides a simple progress indicator with context cancellation
// support. The message can be swapped while the spinner runs, which the
// unwrap commands use to reflect the current pipeline stage.
type Spinner struct {
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	frames  []string
	started time.Time

	mu        sync.Mutex
	message   string
	lastWidth int
}

// newSpinner creates a new spinner with the given message.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that will stop when the context is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		message: message,
	}
}

// SetMessage replaces the spinner message on the next frame.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.started = time.Now()
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.renderFrame(s.frames[i%len(s.frames)])
				i++
			}
		}
	}()
}

func (s *Spinner) renderFrame(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := s.message
	if elapsed := time.Since(s.started); elapsed >= elapsedAfter {
		line = fmt.Sprintf("%s (%ds)", s.message, int(elapsed.Seconds()))
	}
	// Pad over the previous frame in case the message shrank.
	if pad := s.lastWidth - len(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	s.lastWidth = len(line)
	fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(line))
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	s.cancel()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", s.lastWidth+4))
}

// StopWithSuccess stops the spinner and shows a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled returns true if the spinner was stopped due to context cancellation.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// spinnerHooks feeds pipeline stage transitions into a spinner so the
// message tracks what the unwrap is currently doing.
type spinnerHooks struct {
	observability.NoopPipelineHooks
	spinner *Spinner
}

func (h *spinnerHooks) OnLoadStart(_ context.Context, source string) {
	h.spinner.SetMessage("Loading " + source)
}

func (h *spinnerHooks) OnIslandsStart(_ context.Context, selectedFaces int) {
	h.spinner.SetMessage(fmt.Sprintf("Finding islands across %d faces", selectedFaces))
}

func (h *spinnerHooks) OnApplyStart(_ context.Context, islandCount int) {
	h.spinner.SetMessage(fmt.Sprintf("Tiling %d islands", islandCount))
}

func (h *spinnerHooks) OnRenderStart(_ context.Context, formats []string) {
	h.spinner.SetMessage("Rendering " + strings.Join(formats, ", "))
}
