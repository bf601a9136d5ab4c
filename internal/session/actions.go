package session

// Action is what an emitted sign does to the text buffer.
type Action int

const (
	// ActionLiteral appends the sign itself.
	ActionLiteral Action = iota
	// ActionSpace appends a space character.
	ActionSpace
	// ActionBackspace removes the last character; no-op on an empty buffer.
	ActionBackspace
	// ActionClear empties the buffer.
	ActionClear
)

// Wire names for non-literal actions, as sent in emission events and stored
// in the bindings table.
const (
	ActionNameSpace     = "SPACE"
	ActionNameBackspace = "BACKSPACE"
	ActionNameClear     = "DELETE"
)

// String returns the wire name of the action; literal appends have none.
func (a Action) String() string {
	switch a {
	case ActionSpace:
		return ActionNameSpace
	case ActionBackspace:
		return ActionNameBackspace
	case ActionClear:
		return ActionNameClear
	default:
		return ""
	}
}

// ActionFromName maps a wire name back to an Action. Unrecognized names
// resolve to ActionLiteral so a bad binding degrades to typing the sign.
func ActionFromName(name string) Action {
	switch name {
	case ActionNameSpace:
		return ActionSpace
	case ActionNameBackspace:
		return ActionBackspace
	case ActionNameClear:
		return ActionClear
	default:
		return ActionLiteral
	}
}

// Bindings maps sign labels to buffer-editing actions. Labels not present
// are literal appends. The mapping is data-driven because gesture
// vocabularies differ between sign-language datasets.
type Bindings map[string]Action

// DefaultBindings mirrors the shipped gesture vocabulary: dedicated action
// words plus single-letter aliases for datasets without dedicated action
// classes.
func DefaultBindings() Bindings {
	return Bindings{
		ActionNameSpace:     ActionSpace,
		ActionNameBackspace: ActionBackspace,
		ActionNameClear:     ActionClear,
		"S":                 ActionSpace,
		"B":                 ActionBackspace,
		"D":                 ActionClear,
	}
}

// Resolve returns the action bound to label, defaulting to ActionLiteral.
func (b Bindings) Resolve(label string) Action {
	if a, ok := b[label]; ok {
		return a
	}
	return ActionLiteral
}

// Apply performs the action on the buffer. For ActionLiteral the label
// itself is appended.
func Apply(buf *TextBuffer, action Action, label string) {
	switch action {
	case ActionSpace:
		buf.Append(" ")
	case ActionBackspace:
		buf.Pop()
	case ActionClear:
		buf.Clear()
	default:
		buf.Append(label)
	}
}
