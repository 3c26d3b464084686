package generate

import (
	"context"

	"github.com/hrishi7/lingocare-studio/internal/stream"
)

// fakeStream replays a scripted stream: progress events, then chunks, then
// either the complete event or an error.
type fakeStream struct {
	progress []stream.ProgressEvent
	chunks   []string
	complete *stream.CompleteEvent
	err      error

	// block, when set, stalls the stream until released. Used to test
	// in-flight serialization.
	block chan struct{}
}

func (f *fakeStream) Stream(ctx context.Context, up stream.Upload, h stream.Handlers) (*stream.CompleteEvent, error) {
	for _, p := range f.progress {
		if h.OnProgress != nil {
			h.OnProgress(p)
		}
	}
	for i, c := range f.chunks {
		if h.OnChunk != nil {
			h.OnChunk(stream.ChunkEvent{Chunk: c, ChunkIndex: i})
		}
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.complete, nil
}
