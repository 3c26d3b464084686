package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
)

// State of one streaming operation. Completed and Errored are terminal.
type State int32

const (
	StateIdle State = iota
	StateRequesting
	StateStreaming
	StateCompleted
	StateErrored
)

var (
	// ErrAlreadyUsed: a Client runs exactly one operation; terminal states
	// never transition back to streaming.
	ErrAlreadyUsed = errors.New("stream client already used")

	// ErrStreamEnded: the body ended without a terminal complete or error
	// message.
	ErrStreamEnded = errors.New("stream ended without completion")
)

// Upload is the single binary payload sent with the generation request.
type Upload struct {
	Reader   io.Reader
	Filename string
}

// Handlers receive non-terminal events. Either callback may be nil.
type Handlers struct {
	OnProgress func(ProgressEvent)
	OnChunk    func(ChunkEvent)
}

// Client owns one long-lived generation request and frames its response
// body into protocol messages. Create a fresh Client per operation.
type Client struct {
	http  *http.Client
	url   string
	log   *zap.SugaredLogger
	state atomic.Int32
}

// NewClient points at the full streaming endpoint URL. A nil httpClient
// falls back to http.DefaultClient; no timeout is imposed on the stream
// itself, cancellation is the caller's ctx.
func NewClient(url string, httpClient *http.Client, log *zap.SugaredLogger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Client{http: httpClient, url: url, log: log}
}

func (c *Client) State() State {
	return State(c.state.Load())
}

// Stream uploads the document and consumes the event stream until a terminal
// message, a transport failure, or ctx cancellation. The response body is
// closed on every path.
func (c *Client) Stream(ctx context.Context, up Upload, h Handlers) (*CompleteEvent, error) {
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateRequesting)) {
		return nil, ErrAlreadyUsed
	}

	req, err := c.buildRequest(ctx, up)
	if err != nil {
		c.state.Store(int32(StateErrored))
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.state.Store(int32(StateErrored))
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.state.Store(int32(StateErrored))
		return nil, fmt.Errorf("generation request failed (%d): %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	c.state.Store(int32(StateStreaming))
	ev, err := c.consume(resp.Body, h)
	if err != nil {
		c.state.Store(int32(StateErrored))
		return nil, err
	}
	c.state.Store(int32(StateCompleted))
	return ev, nil
}

func (c *Client) buildRequest(ctx context.Context, up Upload) (*http.Request, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", up.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, up.Reader); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "text/event-stream")
	return req, nil
}

func (c *Client) consume(r io.Reader, h Handlers) (*CompleteEvent, error) {
	sc := &blockScanner{}
	buf := make([]byte, 4096)

	for {
		n, readErr := r.Read(buf)
		if n > 0 {
			for _, b := range sc.feed(buf[:n]) {
				ev, term, err := c.dispatch(b, h)
				if term {
					return ev, err
				}
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				return nil, ErrStreamEnded
			}
			return nil, fmt.Errorf("failed to read stream: %w", readErr)
		}
	}
}

// dispatch routes one framed block. Malformed data payloads are logged and
// skipped; framing noise must never abort the stream.
func (c *Client) dispatch(b block, h Handlers) (*CompleteEvent, bool, error) {
	switch b.event {
	case "progress":
		var ev ProgressEvent
		if err := json.Unmarshal([]byte(b.data), &ev); err != nil {
			c.log.Warnw("skipping malformed progress message", "error", err)
			return nil, false, nil
		}
		if h.OnProgress != nil {
			h.OnProgress(ev)
		}

	case "chunk":
		var ev ChunkEvent
		if err := json.Unmarshal([]byte(b.data), &ev); err != nil {
			c.log.Warnw("skipping malformed chunk message", "error", err)
			return nil, false, nil
		}
		if h.OnChunk != nil {
			h.OnChunk(ev)
		}

	case "complete":
		var ev CompleteEvent
		if err := json.Unmarshal([]byte(b.data), &ev); err != nil {
			c.log.Warnw("skipping malformed complete message", "error", err)
			return nil, false, nil
		}
		return &ev, true, nil

	case "error":
		var ev ErrorEvent
		if err := json.Unmarshal([]byte(b.data), &ev); err != nil {
			c.log.Warnw("skipping malformed error message", "error", err)
			return nil, false, nil
		}
		return nil, true, &ProtocolError{Code: ev.Code, Message: ev.Message}

	default:
		c.log.Debugw("ignoring unknown event", "event", b.event)
	}
	return nil, false, nil
}
