package garden

// Action names the effect of a successful garden write.
type Action string

const (
	ActionPlanted Action = "PLANTED"
	ActionRemoved Action = "REMOVED"
	ActionWatered Action = "WATERED"
)

func (a Action) String() string {
	return string(a)
}

// Result is the outcome of a garden write. Err is nil on success; Action is
// always the action that was attempted.
type Result struct {
	PlantID string
	Action  Action
	Err     error
}

// OK reports whether the write succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
