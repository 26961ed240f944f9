package provider

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Status of a provider application. APPROVED is terminal for this component:
// the user becomes a provider and the tracker disappears from their dashboard.
type Status string

const (
	StatusNone     Status = "NONE"
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ApplicationState is the interpreted status payload.
type ApplicationState struct {
	Status          Status
	RejectionReason string
	// DaysLeft is the server-counted cooldown before re-application,
	// surfaced verbatim. Zero means re-apply is open.
	DaysLeft int
}

// CanReapply reports whether the re-apply action is enabled.
func (s ApplicationState) CanReapply() bool {
	return s.Status == StatusRejected && s.DaysLeft == 0
}

// ShowCallToAction reports whether the "become a provider" prompt is shown.
func (s ApplicationState) ShowCallToAction() bool {
	return s.Status == StatusNone
}

// UnderReview reports whether the passive banner is shown with no actions.
func (s ApplicationState) UnderReview() bool {
	return s.Status == StatusPending
}

// StatusResult distinguishes a loaded status from a failed fetch. Both render
// the same today (fail-open toward the call-to-action), but tests and future
// UI can tell them apart.
type StatusResult struct {
	Known bool
	State ApplicationState
}

// Display folds an unknown result into the NONE rendering.
func (r StatusResult) Display() ApplicationState {
	if !r.Known {
		return ApplicationState{Status: StatusNone}
	}
	return r.State
}

// The backend serializes the status map with string values, so daysLeft
// arrives as "3" rather than 3. Accept either.
type flexInt int

func (f *flexInt) UnmarshalJSON(raw []byte) error {
	raw = bytes.Trim(bytes.TrimSpace(raw), `"`)
	if len(raw) == 0 || string(raw) == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

type statusPayload struct {
	Status          string  `json:"status"`
	RejectionReason string  `json:"rejectionReason"`
	DaysLeft        flexInt `json:"daysLeft"`
}

func parseStatus(raw []byte) (ApplicationState, error) {
	var p statusPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return ApplicationState{}, err
	}

	st := Status(p.Status)
	switch st {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		st = StatusNone
	}

	state := ApplicationState{Status: st}
	if st == StatusRejected {
		state.RejectionReason = p.RejectionReason
		state.DaysLeft = int(p.DaysLeft)
	}
	return state, nil
}
