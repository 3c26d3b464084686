package curriculum

// Intent describes one desired change to the tree. Intents from user edits
// and intents derived from the stream go through the same reducer.
type Intent interface {
	isIntent()
}

// ReplaceTree swaps in the given tree verbatim. Dispatched when an
// authoritative generated document arrives.
type ReplaceTree struct {
	Tree *Curriculum
}

// Reset replaces the root with a fresh empty curriculum. Dispatched before a
// new streaming run so fragments land in a clean tree.
type Reset struct{}

// AppendModule adds a module materialized from the stream, preserving
// arrival order.
type AppendModule struct {
	Module Module
}

// SetInfo updates the curriculum's own title/description. Nil fields are
// left unchanged.
type SetInfo struct {
	Title       *string
	Description *string
}

type CreateModule struct{}

type UpdateModule struct {
	ModuleID    string
	Title       *string
	Description *string
}

type DeleteModule struct {
	ModuleID string
}

type CreateTopic struct {
	ModuleID string
}

type UpdateTopic struct {
	ModuleID    string
	TopicID     string
	Title       *string
	Description *string
}

type DeleteTopic struct {
	ModuleID string
	TopicID  string
}

type CreateLesson struct {
	ModuleID string
	TopicID  string
}

type UpdateLesson struct {
	ModuleID    string
	TopicID     string
	LessonID    string
	Title       *string
	Description *string
}

type DeleteLesson struct {
	ModuleID string
	TopicID  string
	LessonID string
}

func (ReplaceTree) isIntent()  {}
func (Reset) isIntent()        {}
func (AppendModule) isIntent() {}
func (SetInfo) isIntent()      {}
func (CreateModule) isIntent() {}
func (UpdateModule) isIntent() {}
func (DeleteModule) isIntent() {}
func (CreateTopic) isIntent()  {}
func (UpdateTopic) isIntent()  {}
func (DeleteTopic) isIntent()  {}
func (CreateLesson) isIntent() {}
func (UpdateLesson) isIntent() {}
func (DeleteLesson) isIntent() {}
