package handlers

import (
	"errors"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hyperagentio/dispute-agent/internal/verify"
)

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "ok",
		"data":    data,
	})
}

func fail(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
		"data":    nil,
	})
}

func (h *Handler) Ping(c *gin.Context) {
	ok(c, gin.H{"message": "pong"})
}

// ServiceInfo describes the agent to callers probing the root path.
func (h *Handler) ServiceInfo(c *gin.Context) {
	info := gin.H{
		"service":     "dispute-agent",
		"ai_provider": h.Cfg.AIProvider,
		"endpoints": gin.H{
			"verify":   "POST /verify",
			"validate": "POST /validate",
			"status":   "GET /verify/{job_id}",
		},
	}
	if h.Signer != nil {
		info["public_key"] = h.Signer.PublicKeyHex()
	}
	ok(c, info)
}

type verifyReq struct {
	JobData string `json:"job_data" binding:"required"`
}

func (h *Handler) SubmitVerification(c *gin.Context) {
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	id, err := h.Svc.SubmitVerification(c.Request.Context(), req.JobData)
	if err != nil {
		if errors.Is(err, verify.ErrJobDataTooShort) || errors.Is(err, verify.ErrJobDataTooLong) {
			fail(c, http.StatusBadRequest, 10003, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	ok(c, gin.H{
		"job_id":     id,
		"status":     verify.StatusProcessing,
		"status_url": "/verify/" + id,
		"provider":   h.Cfg.AIProvider,
		"timestamp":  time.Now().Unix(),
	})
}

type validateReq struct {
	JobID           string  `json:"job_id" binding:"required"`
	TransactionID   string  `json:"transaction_id"`
	VerifierAgentID *uint64 `json:"verifier_agent_id"`
}

func (h *Handler) SubmitCrossValidation(c *gin.Context) {
	var req validateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	var verifierID *big.Int
	if req.VerifierAgentID != nil {
		verifierID = new(big.Int).SetUint64(*req.VerifierAgentID)
	}

	id, err := h.Svc.SubmitCrossValidation(c.Request.Context(), req.JobID, req.TransactionID, verifierID)
	if err != nil {
		if errors.Is(err, verify.ErrChainDisabled) {
			fail(c, http.StatusServiceUnavailable, 50301, "cross-validation is not configured")
			return
		}
		fail(c, http.StatusBadRequest, 10002, "invalid job_id: "+err.Error())
		return
	}

	ok(c, gin.H{
		"validation_id": id,
		"status":        verify.StatusProcessing,
		"status_url":    "/verify/" + id,
		"timestamp":     time.Now().Unix(),
	})
}

func (h *Handler) JobStatus(c *gin.Context) {
	jobID := c.Param("job_id")
	if jobID == "" {
		fail(c, http.StatusBadRequest, 10002, "job_id required")
		return
	}

	out, err := h.Svc.Status(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, verify.ErrNotFound) {
			fail(c, http.StatusNotFound, 40402, "job not found")
			return
		}
		fail(c, http.StatusInternalServerError, 50001, "internal error")
		return
	}

	ok(c, out)
}
