package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreDispatchNotifies(t *testing.T) {
	s := NewStore(&seqGen{})

	var seen []*Curriculum
	unsubscribe := s.Subscribe(func(c *Curriculum) {
		seen = append(seen, c)
	})

	s.Dispatch(CreateModule{})
	s.Dispatch(CreateModule{})
	require.Len(t, seen, 2)
	assert.Same(t, s.Current(), seen[1])

	unsubscribe()
	s.Dispatch(CreateModule{})
	assert.Len(t, seen, 2)
}

func TestStoreNoOpSkipsNotification(t *testing.T) {
	s := NewStore(&seqGen{})

	calls := 0
	s.Subscribe(func(*Curriculum) { calls++ })

	before := s.Current()
	after := s.Dispatch(DeleteModule{ModuleID: "ghost"})

	assert.Same(t, before, after)
	assert.Zero(t, calls)
}

func TestStoreSubscriberMayDispatch(t *testing.T) {
	s := NewStore(&seqGen{})

	first := true
	s.Subscribe(func(c *Curriculum) {
		if first {
			first = false
			s.Dispatch(CreateTopic{ModuleID: c.Modules[0].ID})
		}
	})

	s.Dispatch(CreateModule{})
	assert.Len(t, s.Current().Modules[0].Topics, 1)
}
