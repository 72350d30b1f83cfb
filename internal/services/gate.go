package services

// GateState is the session state a visitor occupies for a competition.
// Anything other than AwaitingStart or Active is terminal for entering the
// exam view.
type GateState string

const (
	GateUnjoined      GateState = "unjoined"
	GateAwaitingStart GateState = "awaiting_start"
	GateActive        GateState = "active"
	GateSubmitted     GateState = "submitted"
	GateEndedNoScores GateState = "ended_no_scores"
	GateEndedScores   GateState = "ended_scores"
)

// ResolveGate maps a freshly resolved competition status and the
// participant's submitted flag to a session state. Pure; every admission
// decision in the handlers goes through it.
func ResolveGate(status CompetitionStatus, submitted bool) GateState {
	switch {
	case !status.Exists:
		return GateUnjoined
	case status.Ended && status.ScoresReleased:
		return GateEndedScores
	case status.Ended:
		return GateEndedNoScores
	case !status.Started:
		return GateAwaitingStart
	case submitted:
		return GateSubmitted
	default:
		return GateActive
	}
}

// CanEnterExam reports whether answer entry is still permitted.
func (g GateState) CanEnterExam() bool {
	return g == GateActive
}
