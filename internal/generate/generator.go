package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/hrishi7/lingocare-studio/internal/config"
	"github.com/hrishi7/lingocare-studio/internal/curriculum"
	"github.com/hrishi7/lingocare-studio/internal/extract"
	"github.com/hrishi7/lingocare-studio/internal/identity"
	"github.com/hrishi7/lingocare-studio/internal/remote"
	"github.com/hrishi7/lingocare-studio/internal/stream"
)

// ErrGenerationInFlight: generations are serialized; a second upload while
// one is running is rejected instead of racing two streams into one tree.
var ErrGenerationInFlight = errors.New("a generation is already in flight")

// Status is one throttled UI-visible progress update.
type Status struct {
	Stage   stream.Status
	Message string
	Percent int
	Modules int
}

// streamClient is what the generator needs from a streaming transport.
type streamClient interface {
	Stream(ctx context.Context, up stream.Upload, h stream.Handlers) (*stream.CompleteEvent, error)
}

// Generator drives one document upload through the whole pipeline: reset the
// tree, accumulate streamed fragments, extract completed modules into append
// intents, and replace the tree with the authoritative result on completion.
type Generator struct {
	store  *curriculum.Store
	remote *remote.Client
	log    *zap.SugaredLogger
	cfg    *config.Config
	prov   identity.Generator

	inFlight atomic.Bool

	// newClient builds the per-operation transport; swapped out in tests.
	newClient func() streamClient
}

func New(cfg *config.Config, store *curriculum.Store, log *zap.SugaredLogger) *Generator {
	g := &Generator{
		store:  store,
		remote: remote.NewClient(cfg.API.BaseURL, cfg.API.GeneratePath, cfg.API.HealthPath),
		log:    log,
		cfg:    cfg,
		prov:   identity.NewProvisional(),
	}
	g.newClient = func() streamClient {
		return stream.NewClient(cfg.StreamURL(), nil, log)
	}
	return g
}

// FromUpload streams a generation. onStatus may be nil; when set it receives
// throttled progress updates, emitted immediately whenever a module just
// completed. On failure the partially streamed tree is left in place.
func (g *Generator) FromUpload(ctx context.Context, r io.Reader, filename string, onStatus func(Status)) (*curriculum.Curriculum, error) {
	if !g.inFlight.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer g.inFlight.Store(false)

	// A new streaming run always starts from a fresh root, discarding any
	// unsaved manual edits.
	g.store.Dispatch(curriculum.Reset{})

	var (
		buf   strings.Builder
		st    extract.State
		stage = stream.StatusStarted
		tn    = extract.Tuning{
			BracesPerModule:    g.cfg.Extract.BracesPerModule,
			MinExpectedModules: g.cfg.Extract.MinExpectedModules,
		}
		th = stream.NewThrottle(g.cfg.ProgressInterval())
	)

	emit := func(message string, force bool) {
		if onStatus == nil || !th.Allow(force) {
			return
		}
		onStatus(Status{
			Stage:   stage,
			Message: message,
			Percent: extract.EstimateProgress(buf.String(), tn),
			Modules: len(st.Complete),
		})
	}

	ev, err := g.newClient().Stream(ctx, stream.Upload{Reader: r, Filename: filename}, stream.Handlers{
		OnProgress: func(p stream.ProgressEvent) {
			stage = p.Status
			emit(p.Message, false)
		},
		OnChunk: func(ch stream.ChunkEvent) {
			buf.WriteString(ch.Chunk)
			added, next := extract.Extract(buf.String(), st, g.prov)
			st = next
			for _, m := range added {
				g.store.Dispatch(curriculum.AppendModule{Module: m})
			}
			// A completed module is visibly meaningful; bypass the throttle.
			emit("", len(added) > 0)
		},
	})
	if err != nil {
		g.log.Warnw("generation stream failed", "error", err)
		return nil, err
	}

	final, err := decodeFinal(ev.Curriculum)
	if err != nil {
		return nil, fmt.Errorf("final payload unparsable: %w", err)
	}
	g.store.Dispatch(curriculum.ReplaceTree{Tree: final})

	g.log.Infow("generation complete",
		"provider", ev.AIProvider,
		"modules", len(final.Modules),
		"processing_time", ev.ProcessingTime)
	return final, nil
}

// FromUploadSync runs the non-streaming variant and loads the result in one
// replace.
func (g *Generator) FromUploadSync(ctx context.Context, r io.Reader, filename string) (*curriculum.Curriculum, error) {
	if !g.inFlight.CompareAndSwap(false, true) {
		return nil, ErrGenerationInFlight
	}
	defer g.inFlight.Store(false)

	res, err := g.remote.Generate(ctx, r, filename)
	if err != nil {
		return nil, err
	}

	tree := res.Curriculum.Clone()
	if tree.ID == "" {
		tree.ID = identity.Random{}.NewID()
	}
	g.store.Dispatch(curriculum.ReplaceTree{Tree: tree})
	return tree, nil
}

// Health proxies the service health check.
func (g *Generator) Health(ctx context.Context) (*remote.HealthStatus, error) {
	return g.remote.Health(ctx)
}

// decodeFinal accepts the curriculum field either as a direct object or as a
// string blob (possibly wrapped in prose or a code fence).
func decodeFinal(raw json.RawMessage) (*curriculum.Curriculum, error) {
	trim := bytes.TrimSpace(raw)
	if len(trim) == 0 || bytes.Equal(trim, []byte("null")) {
		return nil, extract.ErrNoJSONObject
	}

	if trim[0] == '"' {
		var s string
		if err := json.Unmarshal(trim, &s); err != nil {
			return nil, fmt.Errorf("bad curriculum payload: %w", err)
		}
		return extract.ParseCurriculum(s)
	}

	var cur curriculum.Curriculum
	if err := json.Unmarshal(trim, &cur); err != nil {
		return nil, fmt.Errorf("bad curriculum payload: %w", err)
	}
	cur.Normalize()
	return &cur, nil
}
