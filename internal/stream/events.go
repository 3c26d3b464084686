package stream

import (
	"encoding/json"
	"fmt"
)

// Status values the generation service reports while working through an
// upload.
type Status string

const (
	StatusStarted              Status = "started"
	StatusParsingPDF           Status = "parsing_pdf"
	StatusPDFParsed            Status = "pdf_parsed"
	StatusGeneratingCurriculum Status = "generating_curriculum"
	StatusAIProcessing         Status = "ai_processing"
	StatusParsingResponse      Status = "parsing_response"
	StatusCompleted            Status = "completed"
)

// ProgressEvent is advisory service-side status.
type ProgressEvent struct {
	Status    Status         `json:"status"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp string         `json:"timestamp"`
}

// ChunkEvent carries one raw text fragment of the document being generated.
// ChunkIndex is informational; delivery order is authoritative for
// concatenation.
type ChunkEvent struct {
	Chunk      string `json:"chunk"`
	ChunkIndex int    `json:"chunkIndex"`
	Timestamp  string `json:"timestamp"`
}

// CompleteEvent terminates a successful stream. Curriculum stays raw here:
// the service may send the object directly or as a prose-wrapped string, and
// the caller owns that decision.
type CompleteEvent struct {
	Curriculum     json.RawMessage `json:"curriculum"`
	AIProvider     string          `json:"aiProvider"`
	ProcessingTime float64         `json:"processingTime"`
	Timestamp      string          `json:"timestamp"`
}

// ErrorEvent terminates a failed stream.
type ErrorEvent struct {
	Code      string          `json:"code"`
	Message   string          `json:"message"`
	Details   json.RawMessage `json:"details,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// ProtocolError is an explicit error message from the service, propagated
// verbatim.
type ProtocolError struct {
	Code    string
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("generation failed (%s): %s", e.Code, e.Message)
}
