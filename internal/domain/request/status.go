package request

import "fmt"

// Status is the workflow state of a service request. The zero value is not
// valid; use ParseStatus for external input.
type Status string

const (
	StatusDraft                Status = "draft"
	StatusSubmitted            Status = "submitted"
	StatusRequirementsAnalysis Status = "requirements_analysis"
	StatusPlanning             Status = "planning"
	StatusEstimation           Status = "estimation"
	StatusProposalReady        Status = "proposal_ready"
	StatusApproved             Status = "approved"
	StatusRejected             Status = "rejected"
	StatusInDevelopment        Status = "in_development"
	StatusCompleted            Status = "completed"
	StatusCanceled             Status = "canceled"

	// Legacy values kept for records created before the workflow rework.
	StatusInProcess Status = "in_process"
	StatusInReview  Status = "in_review"
)

// AllStatuses lists every status in workflow order, legacy values last.
var AllStatuses = []Status{
	StatusDraft,
	StatusSubmitted,
	StatusRequirementsAnalysis,
	StatusPlanning,
	StatusEstimation,
	StatusProposalReady,
	StatusApproved,
	StatusRejected,
	StatusInDevelopment,
	StatusCompleted,
	StatusCanceled,
	StatusInProcess,
	StatusInReview,
}

func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Next returns the status a request moves to when advanced along the main
// workflow. Terminal statuses map to themselves; legacy values re-enter the
// pipeline at the stage they used to represent.
func (s Status) Next() Status {
	switch s {
	case StatusDraft:
		return StatusSubmitted
	case StatusSubmitted:
		return StatusRequirementsAnalysis
	case StatusRequirementsAnalysis:
		return StatusPlanning
	case StatusPlanning:
		return StatusEstimation
	case StatusEstimation:
		return StatusProposalReady
	case StatusProposalReady:
		return StatusApproved
	case StatusApproved:
		return StatusInDevelopment
	case StatusInDevelopment:
		return StatusCompleted
	case StatusInProcess:
		return StatusRequirementsAnalysis
	case StatusInReview:
		return StatusPlanning
	case StatusRejected, StatusCompleted, StatusCanceled:
		return s
	default:
		return s
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

// Label returns the human readable name shown in the portal.
func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusSubmitted:
		return "Submitted"
	case StatusRequirementsAnalysis:
		return "Requirements Analysis"
	case StatusPlanning:
		return "Planning"
	case StatusEstimation:
		return "Estimation"
	case StatusProposalReady:
		return "Proposal Ready"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	case StatusInDevelopment:
		return "In Development"
	case StatusCompleted:
		return "Completed"
	case StatusCanceled:
		return "Canceled"
	case StatusInProcess:
		return "In Process"
	case StatusInReview:
		return "In Review"
	default:
		return string(s)
	}
}

// Color returns the badge color used by the frontend for this status.
func (s Status) Color() string {
	switch s {
	case StatusDraft:
		return "gray"
	case StatusSubmitted:
		return "blue"
	case StatusRequirementsAnalysis:
		return "cyan"
	case StatusPlanning:
		return "teal"
	case StatusEstimation:
		return "purple"
	case StatusProposalReady:
		return "orange"
	case StatusApproved:
		return "green"
	case StatusRejected:
		return "red"
	case StatusInDevelopment:
		return "indigo"
	case StatusCompleted:
		return "green"
	case StatusCanceled:
		return "red"
	case StatusInProcess:
		return "cyan"
	case StatusInReview:
		return "teal"
	default:
		return "gray"
	}
}
