package battle

// ActionType is a primitive battle command.
type ActionType string

const (
	ActionMove    ActionType = "move"
	ActionAttack  ActionType = "attack"
	ActionCast    ActionType = "cast"
	ActionRetreat ActionType = "retreat"
	ActionSkip    ActionType = "skip"
)

// Action is one primitive command. Cell -1 means "stay"; TargetCell -1
// means no target cell.
type Action struct {
	Type       ActionType `json:"type"`
	Unit       uint32     `json:"unit,omitempty"`
	Target     uint32     `json:"target,omitempty"`
	Cell       int        `json:"cell"`
	TargetCell int        `json:"target_cell"`
	Spell      SpellID    `json:"spell,omitempty"`
}

// Actions is the ordered command list for one unit turn.
type Actions []Action

// NewMove moves a unit to cell.
func NewMove(unit uint32, cell int) Action {
	return Action{Type: ActionMove, Unit: unit, Cell: cell, TargetCell: -1}
}

// NewAttack strikes the target from cell, or from the current cell when
// cell is -1. Shooting uses -1 as well.
func NewAttack(unit, target uint32, cell, targetCell int) Action {
	return Action{Type: ActionAttack, Unit: unit, Target: target, Cell: cell, TargetCell: targetCell}
}

// NewCast casts a spell at targetCell, -1 for untargeted spells.
func NewCast(spell SpellID, targetCell int) Action {
	return Action{Type: ActionCast, Spell: spell, Cell: -1, TargetCell: targetCell}
}

// NewRetreat withdraws the commander's whole army.
func NewRetreat() Action {
	return Action{Type: ActionRetreat, Cell: -1, TargetCell: -1}
}

// NewSkip ends the unit's turn without acting.
func NewSkip(unit uint32) Action {
	return Action{Type: ActionSkip, Unit: unit, Cell: -1, TargetCell: -1}
}
