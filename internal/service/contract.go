package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dealdesk/dealdesk/internal/api/dto"
	"github.com/dealdesk/dealdesk/internal/domain/approval"
	"github.com/dealdesk/dealdesk/internal/domain/contract"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/types"
)

// ContractService orchestrates the contract lifecycle: header CRUD,
// line-item reconciliation against product stock and the review workflow.
type ContractService interface {
	CreateContract(ctx context.Context, req dto.CreateContractRequest) (*dto.ContractResponse, error)
	GetContract(ctx context.Context, id string) (*dto.ContractResponse, error)
	UpdateContract(ctx context.Context, id string, req dto.UpdateContractRequest) (*dto.ContractResponse, error)
	DeleteContract(ctx context.Context, id string) error
	ListContracts(ctx context.Context, filter *types.ContractFilter) (*dto.ListContractsResponse, error)

	StartApproval(ctx context.Context, id string) (*dto.ContractResponse, error)
	RecordApproval(ctx context.Context, id string, req dto.ApproveContractRequest) (*dto.ContractResponse, error)
	ListApprovals(ctx context.Context, id string) (*dto.ListApprovalRecordsResponse, error)
	CountTodayDecisions(ctx context.Context) (int, error)

	GetContractStatusBreakdown(ctx context.Context) ([]*dto.ContractStatusBreakdown, error)
}

type contractService struct {
	ServiceParams
}

func NewContractService(params ServiceParams) ContractService {
	return &contractService{ServiceParams: params}
}

func (s *contractService) CreateContract(ctx context.Context, req dto.CreateContractRequest) (*dto.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToContract(ctx)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		exists, err := s.ContractRepo.ExistsActiveByName(ctx, c.Name)
		if err != nil {
			return err
		}
		if exists {
			return ierr.NewError("contract name already in use").
				WithHintf("A contract named %s already exists", c.Name).
				WithReportableDetails(map[string]any{"name": c.Name}).
				Mark(ierr.ErrAlreadyExists)
		}

		if err := s.ContractRepo.Create(ctx, c); err != nil {
			return err
		}

		return s.reconcileLineItems(ctx, c, req.LineItems)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created contract",
		"contract_id", c.ID,
		"contract_number", c.Number,
		"line_items", len(req.LineItems),
	)
	return s.loadResponse(ctx, c)
}

func (s *contractService) GetContract(ctx context.Context, id string) (*dto.ContractResponse, error) {
	c, err := s.ContractRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.loadResponse(ctx, c)
}

func (s *contractService) UpdateContract(ctx context.Context, id string, req dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var c *contract.Contract
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.ContractRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if !c.ContractStatus.IsEditable() {
			return ierr.NewError("contract is under review").
				WithHint("Contracts under review cannot be modified").
				WithReportableDetails(map[string]any{"contract_id": c.ID, "status": c.ContractStatus}).
				Mark(ierr.ErrInvalidOperation)
		}

		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.CustomerID != nil {
			c.CustomerID = *req.CustomerID
		}
		if req.TotalAmount != nil {
			c.TotalAmount = *req.TotalAmount
		}
		if req.ReceivedAmount != nil {
			c.ReceivedAmount = *req.ReceivedAmount
		}
		if err := c.Validate(); err != nil {
			return err
		}

		s.touch(ctx, c)
		if err := s.ContractRepo.Update(ctx, c); err != nil {
			return err
		}

		// nil means the caller did not send line items at all; leave them be
		if req.LineItems != nil {
			return s.reconcileLineItems(ctx, c, *req.LineItems)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadResponse(ctx, c)
}

// DeleteContract soft deletes a contract after releasing the stock its line
// items hold. Contracts under review cannot be deleted.
func (s *contractService) DeleteContract(ctx context.Context, id string) error {
	return s.DB.WithTx(ctx, func(ctx context.Context) error {
		c, err := s.ContractRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if !c.ContractStatus.IsEditable() {
			return ierr.NewError("contract is under review").
				WithHint("Contracts under review cannot be deleted").
				WithReportableDetails(map[string]any{"contract_id": c.ID, "status": c.ContractStatus}).
				Mark(ierr.ErrInvalidOperation)
		}

		// reconciling to an empty set releases every reservation
		if err := s.reconcileLineItems(ctx, c, nil); err != nil {
			return err
		}

		return s.ContractRepo.Delete(ctx, id)
	})
}

func (s *contractService) ListContracts(ctx context.Context, filter *types.ContractFilter) (*dto.ListContractsResponse, error) {
	if filter == nil {
		filter = types.NewContractFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	// users only ever see their own contracts in lists
	filter.OwnerID = types.GetUserID(ctx)

	contracts, err := s.ContractRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.ContractRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ContractResponse, 0, len(contracts))
	for _, c := range contracts {
		c.LineItems, err = s.LineItemRepo.ListByContract(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, &dto.ContractResponse{Contract: c})
	}

	return &dto.ListContractsResponse{
		Items: items,
		Pagination: types.PaginationResponse{
			Total:  total,
			Limit:  filter.GetLimit(),
			Offset: filter.GetOffset(),
		},
	}, nil
}

// StartApproval submits a contract for review. Only init contracts can be
// submitted; the contract is frozen until a decision is recorded.
func (s *contractService) StartApproval(ctx context.Context, id string) (*dto.ContractResponse, error) {
	var c *contract.Contract
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.ContractRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if c.ContractStatus != types.ContractStatusInit {
			return ierr.NewError("contract cannot be submitted for review").
				WithHintf("Only draft contracts can be submitted, current status is %s", c.ContractStatus).
				WithReportableDetails(map[string]any{"contract_id": c.ID, "status": c.ContractStatus}).
				Mark(ierr.ErrInvalidOperation)
		}

		c.ContractStatus = types.ContractStatusUnderReview
		s.touch(ctx, c)
		return s.ContractRepo.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("contract submitted for review", "contract_id", c.ID)
	return s.loadResponse(ctx, c)
}

// RecordApproval appends a reviewer decision and moves the contract to its
// terminal status. The creator is notified after the transaction commits;
// notification failures never affect the recorded decision.
func (s *contractService) RecordApproval(ctx context.Context, id string, req dto.ApproveContractRequest) (*dto.ContractResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var c *contract.Contract
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		c, err = s.ContractRepo.Get(ctx, id)
		if err != nil {
			return err
		}

		if c.ContractStatus != types.ContractStatusUnderReview {
			return ierr.NewError("contract is not under review").
				WithHintf("Decisions can only be recorded on contracts under review, current status is %s", c.ContractStatus).
				WithReportableDetails(map[string]any{"contract_id": c.ID, "status": c.ContractStatus}).
				Mark(ierr.ErrInvalidOperation)
		}

		rec := &approval.Record{
			ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_APPROVAL),
			TenantID:   types.GetTenantID(ctx),
			ContractID: c.ID,
			ReviewerID: types.GetUserID(ctx),
			Decision:   req.Decision,
			Comment:    req.Comment,
			CreatedAt:  time.Now().UTC(),
		}
		if err := rec.Validate(); err != nil {
			return err
		}
		if err := s.ApprovalRepo.Create(ctx, rec); err != nil {
			return err
		}

		c.ContractStatus = types.ContractStatusFromDecision(req.Decision)
		s.touch(ctx, c)
		return s.ContractRepo.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("recorded approval decision",
		"contract_id", c.ID,
		"decision", req.Decision,
		"reviewer_id", types.GetUserID(ctx),
	)

	// best effort, delivered off the request path after commit so a slow or
	// failing email provider cannot undo or delay the decision
	s.notifyDecision(ctx, c, req.Decision, req.Comment)

	return s.loadResponse(ctx, c)
}

func (s *contractService) ListApprovals(ctx context.Context, id string) (*dto.ListApprovalRecordsResponse, error) {
	if _, err := s.ContractRepo.Get(ctx, id); err != nil {
		return nil, err
	}

	records, err := s.ApprovalRepo.ListByContract(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ApprovalRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, &dto.ApprovalRecordResponse{Record: r})
	}
	return &dto.ListApprovalRecordsResponse{Items: items}, nil
}

// CountTodayDecisions returns how many of the caller's contracts received a
// decision today.
func (s *contractService) CountTodayDecisions(ctx context.Context) (int, error) {
	start, end := types.DayBounds(time.Now())
	ownerID := types.GetUserID(ctx)

	approved, err := s.ContractRepo.CountByStatusUpdatedBetween(ctx, ownerID, types.ContractStatusApproved, start, end)
	if err != nil {
		return 0, err
	}
	rejected, err := s.ContractRepo.CountByStatusUpdatedBetween(ctx, ownerID, types.ContractStatusRejected, start, end)
	if err != nil {
		return 0, err
	}
	return approved + rejected, nil
}

// GetContractStatusBreakdown returns the caller's contract counts per status
// with each status's share of the total as a percentage.
func (s *contractService) GetContractStatusBreakdown(ctx context.Context) ([]*dto.ContractStatusBreakdown, error) {
	counts, err := s.ContractRepo.CountGroupedByStatus(ctx, types.GetUserID(ctx))
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	statuses := []types.ContractStatus{
		types.ContractStatusInit,
		types.ContractStatusUnderReview,
		types.ContractStatusApproved,
		types.ContractStatusRejected,
	}

	breakdown := make([]*dto.ContractStatusBreakdown, 0, len(statuses))
	for _, status := range statuses {
		n := counts[status]
		proportion := 0.0
		if total > 0 {
			proportion = float64(n) * 100.0 / float64(total)
		}
		breakdown = append(breakdown, &dto.ContractStatusBreakdown{
			Status:     status,
			Count:      n,
			Proportion: proportion,
		})
	}
	return breakdown, nil
}

// notifyDecision emails the contract creator about the decision in a
// background goroutine. The send runs on a context detached from the request
// so cancellation cannot cut it short; failures are logged and swallowed.
func (s *contractService) notifyDecision(ctx context.Context, c *contract.Contract, decision types.ApprovalDecision, comment string) {
	contractID := c.ID
	number := c.Number
	name := c.Name
	creatorID := c.CreatedBy

	notifyCtx := context.Background()
	notifyCtx = types.SetTenantID(notifyCtx, types.GetTenantID(ctx))
	notifyCtx = types.SetUserID(notifyCtx, types.GetUserID(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.Logger.Errorw("panic while sending decision notification",
					"contract_id", contractID,
					"panic", r,
				)
			}
		}()

		creator, err := s.UserRepo.Get(notifyCtx, creatorID)
		if err != nil {
			s.Logger.Warnw("skipping decision notification, creator not found",
				"contract_id", contractID,
				"creator_id", creatorID,
				"error", err,
			)
			return
		}
		if creator.Email == "" {
			return
		}

		subject := fmt.Sprintf("Contract %s was %s", number, decision)
		body := fmt.Sprintf(
			"Your contract %q (%s) was %s.\n\nReviewer comment: %s\n",
			name, number, decision, comment,
		)

		if err := s.Sender.Send(notifyCtx, creator.Email, subject, body); err != nil {
			s.Logger.Errorw("failed to send decision notification",
				"contract_id", contractID,
				"to", creator.Email,
				"error", err,
			)
		}
	}()
}

func (s *contractService) loadResponse(ctx context.Context, c *contract.Contract) (*dto.ContractResponse, error) {
	items, err := s.LineItemRepo.ListByContract(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.LineItems = items
	return &dto.ContractResponse{Contract: c}, nil
}

func (s *contractService) touch(ctx context.Context, c *contract.Contract) {
	c.UpdatedAt = time.Now().UTC()
	c.UpdatedBy = types.GetUserID(ctx)
}
