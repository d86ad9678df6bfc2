package v1

import (
	"net/http"

	"github.com/dealdesk/dealdesk/internal/api/dto"
	ierr "github.com/dealdesk/dealdesk/internal/errors"
	"github.com/dealdesk/dealdesk/internal/logger"
	"github.com/dealdesk/dealdesk/internal/service"
	"github.com/dealdesk/dealdesk/internal/types"
	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	service service.ContractService
	log     *logger.Logger
}

func NewContractHandler(service service.ContractService, log *logger.Logger) *ContractHandler {
	return &ContractHandler{service: service, log: log}
}

func (h *ContractHandler) CreateContract(c *gin.Context) {
	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateContract(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ContractHandler) GetContract(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("contract ID is required").
			WithHint("Contract ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetContract(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ContractHandler) ListContracts(c *gin.Context) {
	var filter types.ContractFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListContracts(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ContractHandler) UpdateContract(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateContract(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ContractHandler) DeleteContract(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteContract(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "contract deleted successfully"})
}

// SubmitForReview moves a draft contract into review
func (h *ContractHandler) SubmitForReview(c *gin.Context) {
	id := c.Param("id")
	resp, err := h.service.StartApproval(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RecordDecision records a reviewer's approve or reject decision
func (h *ContractHandler) RecordDecision(c *gin.Context) {
	id := c.Param("id")
	var req dto.ApproveContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.RecordApproval(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ContractHandler) ListApprovals(c *gin.Context) {
	id := c.Param("id")
	resp, err := h.service.ListApprovals(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TodayDecisionCount returns how many of the caller's contracts were
// decided today
func (h *ContractHandler) TodayDecisionCount(c *gin.Context) {
	count, err := h.service.CountTodayDecisions(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *ContractHandler) StatusBreakdown(c *gin.Context) {
	breakdown, err := h.service.GetContractStatusBreakdown(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": breakdown})
}
