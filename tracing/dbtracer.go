package tracing

import (
	"sync"

	"github.com/sarchlab/cropper/datarecording"
)

// MoveTable is the name of the table DBTracers write to.
const MoveTable = "transfers"

// DBTracer stores moves in a data recorder.
type DBTracer struct {
	mu      sync.Mutex
	backend datarecording.DataRecorder
}

// NewDBTracer creates the move table and returns a tracer writing to it.
func NewDBTracer(recorder datarecording.DataRecorder) *DBTracer {
	recorder.CreateTable(MoveTable, Move{})

	return &DBTracer{backend: recorder}
}

// RecordMove buffers the move in the recorder.
func (t *DBTracer) RecordMove(m Move) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData(MoveTable, m)
}

// Terminate writes the buffered moves.
func (t *DBTracer) Terminate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.Flush()
}
