package curriculum

import (
	"fmt"

	"github.com/hrishi7/lingocare-studio/internal/identity"
)

// Apply is the single authority for tree mutation. It never modifies cur;
// it returns a structurally new root, or cur itself when the intent matches
// no target (missing ids are a silent no-op, never an error).
func Apply(cur *Curriculum, in Intent, ids identity.Generator) *Curriculum {
	switch in := in.(type) {
	case ReplaceTree:
		if in.Tree == nil {
			return cur
		}
		return in.Tree

	case Reset:
		return New(ids.NewID())

	case AppendModule:
		next := cur.Clone()
		m := in.Module
		m.Normalize()
		next.Modules = append(next.Modules, m)
		return next

	case SetInfo:
		next := cur.Clone()
		if in.Title != nil {
			next.Title = *in.Title
		}
		if in.Description != nil {
			next.Description = *in.Description
		}
		return next

	case CreateModule:
		next := cur.Clone()
		next.Modules = append(next.Modules, Module{
			ID:     ids.NewID(),
			Title:  fmt.Sprintf("Module %d", len(next.Modules)+1),
			Topics: []Topic{},
		})
		return next

	case UpdateModule:
		if moduleIndex(cur, in.ModuleID) < 0 {
			return cur
		}
		next := cur.Clone()
		m := &next.Modules[moduleIndex(next, in.ModuleID)]
		if in.Title != nil {
			m.Title = *in.Title
		}
		if in.Description != nil {
			m.Description = *in.Description
		}
		return next

	case DeleteModule:
		i := moduleIndex(cur, in.ModuleID)
		if i < 0 {
			return cur
		}
		next := cur.Clone()
		next.Modules = append(next.Modules[:i], next.Modules[i+1:]...)
		return next

	case CreateTopic:
		if moduleIndex(cur, in.ModuleID) < 0 {
			return cur
		}
		next := cur.Clone()
		m := &next.Modules[moduleIndex(next, in.ModuleID)]
		m.Topics = append(m.Topics, Topic{
			ID:      ids.NewID(),
			Title:   fmt.Sprintf("Topic %d", len(m.Topics)+1),
			Lessons: []Lesson{},
		})
		return next

	case UpdateTopic:
		if _, ok := topicAt(cur, in.ModuleID, in.TopicID); !ok {
			return cur
		}
		next := cur.Clone()
		tp, _ := topicAt(next, in.ModuleID, in.TopicID)
		if in.Title != nil {
			tp.Title = *in.Title
		}
		if in.Description != nil {
			tp.Description = *in.Description
		}
		return next

	case DeleteTopic:
		mi := moduleIndex(cur, in.ModuleID)
		if mi < 0 {
			return cur
		}
		ti := topicIndex(cur.Modules[mi].Topics, in.TopicID)
		if ti < 0 {
			return cur
		}
		next := cur.Clone()
		m := &next.Modules[mi]
		m.Topics = append(m.Topics[:ti], m.Topics[ti+1:]...)
		return next

	case CreateLesson:
		if _, ok := topicAt(cur, in.ModuleID, in.TopicID); !ok {
			return cur
		}
		next := cur.Clone()
		tp, _ := topicAt(next, in.ModuleID, in.TopicID)
		tp.Lessons = append(tp.Lessons, Lesson{
			ID:    ids.NewID(),
			Title: fmt.Sprintf("Lesson %d", len(tp.Lessons)+1),
		})
		return next

	case UpdateLesson:
		if _, ok := lessonAt(cur, in.ModuleID, in.TopicID, in.LessonID); !ok {
			return cur
		}
		next := cur.Clone()
		l, _ := lessonAt(next, in.ModuleID, in.TopicID, in.LessonID)
		if in.Title != nil {
			l.Title = *in.Title
		}
		if in.Description != nil {
			l.Description = *in.Description
		}
		return next

	case DeleteLesson:
		tp, ok := topicAt(cur, in.ModuleID, in.TopicID)
		if !ok {
			return cur
		}
		li := lessonIndex(tp.Lessons, in.LessonID)
		if li < 0 {
			return cur
		}
		next := cur.Clone()
		ntp, _ := topicAt(next, in.ModuleID, in.TopicID)
		ntp.Lessons = append(ntp.Lessons[:li], ntp.Lessons[li+1:]...)
		return next

	default:
		return cur
	}
}

func moduleIndex(c *Curriculum, id string) int {
	for i := range c.Modules {
		if c.Modules[i].ID == id {
			return i
		}
	}
	return -1
}

func topicIndex(topics []Topic, id string) int {
	for i := range topics {
		if topics[i].ID == id {
			return i
		}
	}
	return -1
}

func lessonIndex(lessons []Lesson, id string) int {
	for i := range lessons {
		if lessons[i].ID == id {
			return i
		}
	}
	return -1
}

func topicAt(c *Curriculum, moduleID, topicID string) (*Topic, bool) {
	mi := moduleIndex(c, moduleID)
	if mi < 0 {
		return nil, false
	}
	ti := topicIndex(c.Modules[mi].Topics, topicID)
	if ti < 0 {
		return nil, false
	}
	return &c.Modules[mi].Topics[ti], true
}

func lessonAt(c *Curriculum, moduleID, topicID, lessonID string) (*Lesson, bool) {
	tp, ok := topicAt(c, moduleID, topicID)
	if !ok {
		return nil, false
	}
	li := lessonIndex(tp.Lessons, lessonID)
	if li < 0 {
		return nil, false
	}
	return &tp.Lessons[li], true
}
