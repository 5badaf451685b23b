package domain

// SessionStep identifies the next input the conversation expects from a sender.
type SessionStep string

const (
	StepCategory              SessionStep = "category"
	StepDescription           SessionStep = "description"
	StepLocation              SessionStep = "location"
	StepMunicipalitySelection SessionStep = "municipality_selection"
)

// Session is the per-sender in-progress state for a multi-turn flow.
// Fields accumulate as the flow advances: Category is set once a category
// quick reply is chosen, Description once free text is captured at the
// description step. At most one session exists per sender; starting a new
// flow overwrites any prior one.
type Session struct {
	Step        SessionStep `json:"step"`
	Category    string      `json:"category,omitempty"`
	Description string      `json:"description,omitempty"`
}
