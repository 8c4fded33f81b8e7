package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"kucukaslan/bridge/domain"
	"kucukaslan/bridge/services"
	"kucukaslan/bridge/validations"
)

var _ BridgeHandler = &bridgeHandler{nil}

type bridgeHandler struct {
	bridge domain.BridgeService
}

// privacyMethods maps privacy method names to the rule dimension and
// direction they target.
var privacyMethods = map[string]struct {
	kind    domain.RuleKind
	include bool
}{
	"privacyIncludeStorageFeatures": {domain.RuleStorageFeatures, true},
	"privacyExcludeStorageFeatures": {domain.RuleStorageFeatures, false},
	"privacyIncludeEvents":          {domain.RuleEvents, true},
	"privacyExcludeEvents":          {domain.RuleEvents, false},
	"privacyIncludeProperties":      {domain.RuleProperties, true},
	"privacyExcludeProperties":      {domain.RuleProperties, false},
}

// Dispatch handles bridge calls
// @Summary Dispatch a bridge call
// @Description Submit a method name and untyped parameter mapping. Supported methods: init, send, privacyInclude/ExcludeStorageFeatures, privacyInclude/ExcludeEvents, privacyInclude/ExcludeProperties
// @Tags Bridge
// @Accept json
// @Produce json
// @Param request body domain.DispatchRequest true "Bridge call"
// @Success 200 {object} domain.DispatchResponse "Call dispatched successfully"
// @Failure 400 {object} domain.DispatchResponse "Invalid request"
// @Failure 501 {object} domain.DispatchResponse "Method not implemented"
// @Failure 503 {object} domain.DispatchResponse "Service unavailable (buffer full)"
// @Failure 500 {object} domain.DispatchResponse "Internal server error"
// @Router /bridge [post]
func (h bridgeHandler) Dispatch(ctx *fiber.Ctx) error {
	// Parse request body. A dedicated decoder with UseNumber keeps integer
	// and decimal literals distinguishable for the coercion engine.
	var req domain.DispatchRequest
	dec := json.NewDecoder(bytes.NewReader(ctx.Body()))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(domain.DispatchResponse{
			Success: false,
			Message: "Invalid request body: " + err.Error(),
		})
	}
	if strings.TrimSpace(req.Method) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(domain.DispatchResponse{
			Success: false,
			Message: "Validation failed: method is required",
		})
	}
	if req.Parameters == nil {
		req.Parameters = map[string]any{}
	}

	switch {
	case req.Method == "init":
		return h.dispatchInit(ctx, req.Parameters)
	case req.Method == "send":
		return h.dispatchSend(ctx, req.Parameters)
	default:
		if pm, ok := privacyMethods[req.Method]; ok {
			return h.dispatchPrivacy(ctx, pm.kind, pm.include, req.Parameters)
		}
	}

	return ctx.Status(fiber.StatusNotImplemented).JSON(domain.DispatchResponse{
		Success: false,
		Message: fmt.Sprintf("Method %q not implemented", req.Method),
	})
}

func (h bridgeHandler) dispatchInit(ctx *fiber.Ctx, params map[string]any) error {
	req, err := validations.ParseInitRequest(params)
	if err != nil {
		return writeError(ctx, err)
	}
	resp, err := h.bridge.Configure(ctx.Context(), req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

func (h bridgeHandler) dispatchSend(ctx *fiber.Ctx, params map[string]any) error {
	req, err := validations.ParseSendRequest(params)
	if err != nil {
		return writeError(ctx, err)
	}
	resp, err := h.bridge.SendEvents(ctx.Context(), req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

func (h bridgeHandler) dispatchPrivacy(ctx *fiber.Ctx, kind domain.RuleKind, include bool, params map[string]any) error {
	req, err := validations.ParsePrivacyRequest(kind, include, params)
	if err != nil {
		return writeError(ctx, err)
	}
	resp, err := h.bridge.ApplyPrivacyRule(ctx.Context(), req)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// GetPrivacyRules retrieves the current privacy rule sets
// @Summary GET privacy rule sets
// @Description Inspect the current allow/forbid rule sets, optionally for one mode
// @Tags Privacy
// @Produce json
// @Param mode query string false "Privacy mode name (opt-in, opt-out, exempt, custom, no-consent, no-storage)"
// @Success 200 {object} domain.RulesResponse "Rules retrieved successfully"
// @Failure 400 {object} domain.RulesResponse "Invalid request"
// @Router /privacy/rules [get]
func (h bridgeHandler) GetPrivacyRules(ctx *fiber.Ctx) error {
	mode := ctx.Query("mode")
	resp, err := h.bridge.RuleSnapshot(ctx.Context(), mode)
	if err != nil {
		var ruleErr *domain.RuleError
		if errors.As(err, &ruleErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(domain.RulesResponse{
				Success: false,
				Message: "Validation failed: " + err.Error(),
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(domain.RulesResponse{
			Success: false,
			Message: "Internal server error: " + err.Error(),
		})
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// writeError maps a failed dispatch to its HTTP status. Validation, coercion
// and rule errors are caller mistakes; a full buffer is reported as 503 like
// any other temporary backpressure.
func writeError(ctx *fiber.Ctx, err error) error {
	var (
		validationErr *domain.ValidationError
		coercionErr   *domain.CoercionError
		ruleErr       *domain.RuleError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &coercionErr), errors.As(err, &ruleErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(domain.DispatchResponse{
			Success: false,
			Message: "Validation failed: " + err.Error(),
		})
	case errors.Is(err, services.ErrBufferFull):
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(domain.DispatchResponse{
			Success: false,
			Message: "Service temporarily unavailable, please try again later",
		})
	case errors.Is(err, services.ErrNotConfigured):
		return ctx.Status(fiber.StatusConflict).JSON(domain.DispatchResponse{
			Success: false,
			Message: "Collector is not configured, call init first",
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(domain.DispatchResponse{
		Success: false,
		Message: "Internal server error: " + err.Error(),
	})
}

func NewBridgeHandler(bridge domain.BridgeService) BridgeHandler {
	return &bridgeHandler{bridge: bridge}
}
