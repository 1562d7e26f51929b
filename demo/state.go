package demo

// State is the driver lifecycle position
type State uint8

const (
	StateUninitialized State = iota
	StateInitialized
	StateColorSet
	StateRendered
	StateMoved
	StateFailing
	StateTornDown
)

var stateNames = [...]string{
	StateUninitialized: "uninitialized",
	StateInitialized:   "initialized",
	StateColorSet:      "color-set",
	StateRendered:      "rendered",
	StateMoved:         "moved",
	StateFailing:       "failing",
	StateTornDown:      "torn-down",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "invalid"
}

// transitions lists legal successors; TornDown is terminal
var transitions = map[State][]State{
	StateUninitialized: {StateInitialized},
	StateInitialized:   {StateColorSet, StateFailing},
	StateColorSet:      {StateRendered, StateFailing},
	StateRendered:      {StateMoved, StateTornDown, StateFailing},
	StateMoved:         {StateRendered, StateFailing},
	StateFailing:       {StateTornDown},
}

func (s State) canTransition(next State) bool {
	for _, n := range transitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// Step names a delegated operation
type Step uint8

const (
	StepInit Step = iota
	StepSetFg
	StepRender
	StepMove
	StepPause
	StepStop
)

var stepNames = [...]string{
	StepInit:   "init",
	StepSetFg:  "set-fg",
	StepRender: "render",
	StepMove:   "move",
	StepPause:  "pause",
	StepStop:   "stop",
}

func (s Step) String() string {
	if int(s) < len(stepNames) {
		return stepNames[s]
	}
	return "invalid"
}
