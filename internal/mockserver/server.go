// Package mockserver is a development stand-in for the remote generation
// service. It speaks the same wire contract (SSE stream, envelope endpoints)
// from a fabricated curriculum, so the client pipeline can be exercised
// without the real service.
package mockserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hrishi7/lingocare-studio/internal/curriculum"
	"github.com/hrishi7/lingocare-studio/internal/stream"
)

type Options struct {
	// ChunkSize is how many bytes of the generated document each chunk
	// event carries. Small values exercise fragment reassembly.
	ChunkSize int
	// Delay is the pause between events. Zero for tests.
	Delay time.Duration
	// Provider is reported as aiProvider.
	Provider string
}

type Server struct {
	opts Options
	log  *zap.SugaredLogger
}

func New(opts Options, log *zap.SugaredLogger) *Server {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 64
	}
	if opts.Provider == "" {
		opts.Provider = "mock"
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Server{opts: opts, log: log}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.POST("/api/curriculum/generate/stream", s.GenerateStream)
	r.POST("/api/curriculum/generate", s.Generate)
	r.GET("/api/health", s.Health)

	return r
}

func (s *Server) GenerateStream(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   gin.H{"code": "BAD_UPLOAD", "message": "missing file part"},
		})
		return
	}
	file.Close()

	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	s.sendProgress(w, stream.StatusStarted, "generation started")
	s.sendProgress(w, stream.StatusParsingPDF, "parsing uploaded document")

	// Filenames starting with "fail" trigger the error path so clients can
	// exercise failure handling.
	if strings.HasPrefix(header.Filename, "fail") {
		s.send(w, "error", stream.ErrorEvent{
			Code:      "PDF_PARSE_ERROR",
			Message:   "could not extract text from upload",
			Timestamp: timestamp(),
		})
		return
	}

	s.sendProgress(w, stream.StatusPDFParsed, "document parsed")
	s.sendProgress(w, stream.StatusGeneratingCurriculum, "generating curriculum")
	s.sendProgress(w, stream.StatusAIProcessing, "waiting for model output")

	// The streamed document has no ids, like raw model output; the
	// authoritative complete payload carries them.
	draft := sampleCurriculum(header.Filename, "")
	doc, err := json.Marshal(draft)
	if err != nil {
		s.log.Errorw("failed to marshal draft", "error", err)
		return
	}

	index := 0
	for off := 0; off < len(doc); off += s.opts.ChunkSize {
		end := off + s.opts.ChunkSize
		if end > len(doc) {
			end = len(doc)
		}
		s.send(w, "chunk", stream.ChunkEvent{
			Chunk:      string(doc[off:end]),
			ChunkIndex: index,
			Timestamp:  timestamp(),
		})
		index++

		if index%4 == 0 {
			fmt.Fprint(w, ": keep-alive\n\n")
			w.Flush()
		}
	}

	s.sendProgress(w, stream.StatusParsingResponse, "validating model output")

	final := sampleCurriculum(header.Filename, uuid.New().String())
	finalJSON, _ := json.Marshal(final)
	s.send(w, "complete", stream.CompleteEvent{
		Curriculum:     finalJSON,
		AIProvider:     s.opts.Provider,
		ProcessingTime: s.opts.Delay.Seconds() * float64(index),
		Timestamp:      timestamp(),
	})
}

func (s *Server) Generate(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   gin.H{"code": "BAD_UPLOAD", "message": "missing file part"},
		})
		return
	}
	file.Close()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"curriculum": sampleCurriculum(header.Filename, uuid.New().String()),
			"aiProvider": s.opts.Provider,
		},
	})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status":     "ok",
			"aiProvider": s.opts.Provider,
			"timestamp":  timestamp(),
		},
	})
}

func (s *Server) sendProgress(w gin.ResponseWriter, status stream.Status, msg string) {
	s.send(w, "progress", stream.ProgressEvent{
		Status:    status,
		Message:   msg,
		Timestamp: timestamp(),
	})
}

func (s *Server) send(w gin.ResponseWriter, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Errorw("failed to marshal event", "event", event, "error", err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	w.Flush()

	if s.opts.Delay > 0 {
		time.Sleep(s.opts.Delay)
	}
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// sampleCurriculum fabricates a plausible generation result for the given
// upload. With rootID set it also assigns entity ids, mimicking the
// authoritative final document.
func sampleCurriculum(filename, rootID string) curriculum.Curriculum {
	base := strings.TrimSuffix(filename, ".pdf")
	if base == "" {
		base = "document"
	}

	id := func() string {
		if rootID == "" {
			return ""
		}
		return uuid.New().String()
	}

	cur := curriculum.Curriculum{
		ID:          rootID,
		Title:       "Curriculum for " + base,
		Description: "Generated from " + filename,
	}

	moduleNames := []string{"Foundations", "Core Concepts", "Applied Practice"}
	for i, name := range moduleNames {
		m := curriculum.Module{
			ID:          id(),
			Title:       name,
			Description: fmt.Sprintf("%s of %s", name, base),
		}
		for t := 1; t <= 2; t++ {
			tp := curriculum.Topic{
				ID:          id(),
				Title:       fmt.Sprintf("%s topic %d", name, t),
				Description: "",
			}
			for l := 1; l <= 2; l++ {
				tp.Lessons = append(tp.Lessons, curriculum.Lesson{
					ID:          id(),
					Title:       fmt.Sprintf("Lesson %d.%d.%d", i+1, t, l),
					Description: "",
					Content:     "Outline {to be filled in} by the author.",
				})
			}
			m.Topics = append(m.Topics, tp)
		}
		cur.Modules = append(cur.Modules, m)
	}
	return cur
}
