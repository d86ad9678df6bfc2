package types

import (
	ierr "github.com/dealdesk/dealdesk/internal/errors"
)

// ContractStatus tracks a contract through its approval lifecycle.
// Allowed transitions: init -> under_review -> {approved, rejected}.
// approved and rejected are terminal; there is no way back to init.
type ContractStatus string

const (
	ContractStatusInit        ContractStatus = "init"
	ContractStatusUnderReview ContractStatus = "under_review"
	ContractStatusApproved    ContractStatus = "approved"
	ContractStatusRejected    ContractStatus = "rejected"
)

func (s ContractStatus) Validate() error {
	switch s {
	case ContractStatusInit, ContractStatusUnderReview, ContractStatusApproved, ContractStatusRejected:
		return nil
	default:
		return ierr.NewError("invalid contract status").
			WithHintf("Invalid contract status: %s", s).
			Mark(ierr.ErrValidation)
	}
}

// IsTerminal reports whether no further lifecycle transition is defined
// from this status.
func (s ContractStatus) IsTerminal() bool {
	return s == ContractStatusApproved || s == ContractStatusRejected
}

// IsEditable reports whether header and line-item mutation is permitted.
// Only under_review blocks editing; in-flight reviews are immutable.
func (s ContractStatus) IsEditable() bool {
	return s != ContractStatusUnderReview
}

// ApprovalDecision is the outcome recorded by a reviewer.
type ApprovalDecision string

const (
	ApprovalDecisionApproved ApprovalDecision = "approved"
	ApprovalDecisionRejected ApprovalDecision = "rejected"
)

func (d ApprovalDecision) Validate() error {
	switch d {
	case ApprovalDecisionApproved, ApprovalDecisionRejected:
		return nil
	default:
		return ierr.NewError("invalid approval decision").
			WithHintf("Invalid approval decision: %s", d).
			Mark(ierr.ErrValidation)
	}
}

// ContractStatusFromDecision maps a reviewer decision to the resulting
// contract status.
func ContractStatusFromDecision(d ApprovalDecision) ContractStatus {
	if d == ApprovalDecisionApproved {
		return ContractStatusApproved
	}
	return ContractStatusRejected
}
