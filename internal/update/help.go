package update

import "github.com/charmbracelet/bubbles/key"

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Plan, Action: "switch to Plan"},
		{Key: m.Keys.Week, Action: "switch to Week"},
		{Key: m.Keys.Edits, Action: "switch to Edits"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewPlan:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "h/l", Action: "previous/next day"},
			{Key: "c", Action: "mark selected completed"},
			{Key: "x", Action: "skip selected"},
			{Key: "s", Action: "suggest free slots"},
			{Key: "r", Action: "redistribute missed sessions"},
			{Key: "u", Action: "undo selected time edit"},
		}
	case ViewWeek:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next week"},
		}
	case ViewEdits:
		return []KeyBinding{
			{Key: "-", Action: "no contextual bindings"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpKeyMap() helpKeyMap {
	bindings := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		bindings = append(bindings, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		bindings = append(bindings, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return helpKeyMap{short: bindings, full: [][]key.Binding{bindings}}
}
