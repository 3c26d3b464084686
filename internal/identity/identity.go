package identity

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator produces opaque, globally unique string identifiers.
type Generator interface {
	NewID() string
}

// Random is the production generator. Every entity created by the reducer
// gets one of these.
type Random struct{}

func (Random) NewID() string {
	return uuid.New().String()
}

// Provisional generates time-ordered identifiers for entities materialized
// from a stream before the authoritative document arrives. ULIDs encode a
// millisecond timestamp plus monotonic entropy, so ids assigned within the
// same millisecond still sort in assignment order, and the 26-char Crockford
// form is visually distinct from the UUIDs Random hands out.
type Provisional struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func NewProvisional() *Provisional {
	return &Provisional{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

func (p *Provisional) NewID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), p.entropy).String()
}
