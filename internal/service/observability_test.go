package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/tiendo/internal/requestid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_WritesStructuredEvent(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(zerolog.New(&buf).Level(zerolog.DebugLevel))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "project-timeline",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"project": "SCL01"},
	})

	out := buf.String()
	assert.Contains(t, out, `"level":"debug"`)
	assert.Contains(t, out, `"use_case":"project-timeline"`)
	assert.Contains(t, out, `"duration_ms":12`)
	assert.Contains(t, out, `"project":"SCL01"`)
}

func TestLogUseCaseObserver_ErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(zerolog.New(&buf).Level(zerolog.InfoLevel))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "import-catalog", Duration: time.Millisecond})
	assert.Empty(t, buf.String(), "successful use cases are debug output")

	ctx := requestid.WithRequestID(context.Background(), "req-7")
	obs.ObserveUseCase(ctx, UseCaseEvent{Name: "import-catalog", Err: errors.New("boom")})
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.Contains(t, buf.String(), `"request_id":"req-7"`)
}

func TestUseCaseObserverOrNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop([]UseCaseObserver{nil}))

	rec := &recordingObserver{}
	assert.Same(t, rec, useCaseObserverOrNoop([]UseCaseObserver{nil, rec}))
}

func TestPlanCache_SupersedesStaleKey(t *testing.T) {
	c := newPlanCache()
	c.put("p/percent", 1, nil, false)

	_, _, ok := c.get("p/percent", 2)
	assert.False(t, ok)

	c.put("p/percent", 2, nil, true)
	_, show, ok := c.get("p/percent", 2)
	assert.True(t, ok)
	assert.True(t, show)
	assert.Equal(t, 1, c.size())
}
