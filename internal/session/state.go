package session

// State is where a user is in the conversation. The set of variants is
// closed: every implementation lives in this file.
type State interface {
	isState()
	Name() string
}

// Idle is the home screen.
type Idle struct{}

// AwaitingPhoto waits for an ingredient photo or typed ingredient list.
type AwaitingPhoto struct{}

// Chatting holds the last AI answer; text is treated as a follow-up question.
type Chatting struct {
	Context string
}

// Browsing shows the recipe list.
type Browsing struct{}

// AwaitingComment waits for feedback on the recipe at RecipeIndex.
type AwaitingComment struct {
	RecipeIndex int
}

// AwaitingTitle is the first admin step of adding a recipe.
type AwaitingTitle struct{}

// AwaitingText is the second admin step; Title was captured already.
type AwaitingText struct {
	Title string
}

func (Idle) isState()            {}
func (AwaitingPhoto) isState()   {}
func (Chatting) isState()        {}
func (Browsing) isState()        {}
func (AwaitingComment) isState() {}
func (AwaitingTitle) isState()   {}
func (AwaitingText) isState()    {}

func (Idle) Name() string            { return "idle" }
func (AwaitingPhoto) Name() string   { return "awaiting_photo" }
func (Chatting) Name() string        { return "chatting" }
func (Browsing) Name() string        { return "browsing" }
func (AwaitingComment) Name() string { return "awaiting_comment" }
func (AwaitingTitle) Name() string   { return "awaiting_title" }
func (AwaitingText) Name() string    { return "awaiting_text" }

// InAdminFlow reports whether s is one of the recipe-capture steps, where
// menu buttons are taken as literal input.
func InAdminFlow(s State) bool {
	switch s.(type) {
	case AwaitingTitle, AwaitingText:
		return true
	}
	return false
}
