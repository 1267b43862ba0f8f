package handlers

import (
	"github.com/hyperagentio/dispute-agent/internal/config"
	"github.com/hyperagentio/dispute-agent/internal/signing"
	"github.com/hyperagentio/dispute-agent/internal/verify"
)

type Handler struct {
	Cfg    config.Config
	Svc    *verify.Service
	Signer *signing.Signer // nil when response signing is disabled
}

func NewHandler(cfg config.Config, svc *verify.Service, signer *signing.Signer) *Handler {
	return &Handler{Cfg: cfg, Svc: svc, Signer: signer}
}
