package formatter

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// importSpinner is the bubbles MiniDot animation, drawn without a
// tea.Program so plain commands can show it on stderr.
var importSpinner = spinner.MiniDot

// StartSpinner draws message next to an animated frame on a single line of
// out until the returned stop function is called. Stop clears the line and
// may be called more than once.
func StartSpinner(out io.Writer, message string) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		spin(ctx, out, message)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}

func spin(ctx context.Context, out io.Writer, message string) {
	ticker := time.NewTicker(importSpinner.FPS)
	defer ticker.Stop()

	frames := importSpinner.Frames
	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			fmt.Fprint(out, "\r\033[K")
			return
		case <-ticker.C:
			fmt.Fprintf(out, "\r  %s %s", StylePurple.Render(frames[i%len(frames)]), Dim(message))
		}
	}
}
