package http

import (
	"net/http"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/settings"
	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// SettingResponse is one site setting as served to the frontend.
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Kind      string    `json:"kind"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GetSiteSetting handles GET /api/settings/:key - reads one site setting,
// used by the frontend to render legal pages and content blocks.
func (s *Server) GetSiteSetting(ctx echo.Context) error {
	query, err := queries.NewGetSettingQuery(ctx.Param("key"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.getSettingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SettingResponse{
		Key:       result.Key,
		Value:     result.Value,
		Kind:      string(result.Kind),
		UpdatedAt: result.UpdatedAt,
	})
}

// UpdateSiteSettingRequest is the body of PUT /api/settings/:key. Kind only
// matters when the key is created by this request.
type UpdateSiteSettingRequest struct {
	Value string `json:"value"`
	Kind  string `json:"kind,omitempty"`
}

// UpdateSiteSettingResponse identifies the written setting.
type UpdateSiteSettingResponse struct {
	SettingID string `json:"setting_id"`
}

// UpdateSiteSetting handles PUT /api/settings/:key - an admin replaces one
// setting value, creating the setting when the key is new.
func (s *Server) UpdateSiteSetting(ctx echo.Context) error {
	identity, err := requireAdmin(ctx, "update site settings")
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req UpdateSiteSettingRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	cmd, err := commands.NewUpsertSettingCommand(
		identity.ActorID, ctx.Param("key"), req.Value,
		settings.ValueKind(req.Kind), ctx.RealIP())
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.upsertSettingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, UpdateSiteSettingResponse{
		SettingID: result.SettingID.String(),
	})
}

// PolicyResponse is the active revision of one legal document.
type PolicyResponse struct {
	PolicyID    string    `json:"policy_id"`
	Kind        string    `json:"kind"`
	Version     string    `json:"version"`
	Content     string    `json:"content"`
	EffectiveAt time.Time `json:"effective_at"`
}

// GetActivePolicy handles GET /api/settings/policies/:kind - reads the policy
// revision currently shown to customers.
func (s *Server) GetActivePolicy(ctx echo.Context) error {
	kind, err := settings.PolicyKindFromString(ctx.Param("kind"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetActivePolicyQuery(kind)
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.getActivePolicyHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PolicyResponse{
		PolicyID:    result.ID.String(),
		Kind:        string(result.Kind),
		Version:     result.Version,
		Content:     result.Content,
		EffectiveAt: result.EffectiveAt,
	})
}

// PublishPolicyRequest is the body of POST /api/settings/policies.
type PublishPolicyRequest struct {
	Kind        string `json:"kind"`
	Version     string `json:"version"`
	Content     string `json:"content"`
	EffectiveAt string `json:"effective_at,omitempty"`
}

// PublishPolicyResponse identifies the published revision.
type PublishPolicyResponse struct {
	PolicyID string `json:"policy_id"`
}

// PublishPolicy handles POST /api/settings/policies - an admin publishes a
// new policy revision, retiring the previous active one of the same kind.
func (s *Server) PublishPolicy(ctx echo.Context) error {
	identity, err := requireAdmin(ctx, "publish policy")
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req PublishPolicyRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	kind, err := settings.PolicyKindFromString(req.Kind)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var effectiveAt time.Time
	if req.EffectiveAt != "" {
		effectiveAt, err = time.Parse(time.RFC3339, req.EffectiveAt)
		if err != nil {
			return s.writeError(ctx, errs.NewValidationErrorWithCause("effective_at", err))
		}
	}

	cmd, err := commands.NewPublishPolicyCommand(
		identity.ActorID, kind, req.Version, req.Content, effectiveAt, ctx.RealIP())
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.publishPolicyHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, PublishPolicyResponse{
		PolicyID: result.PolicyID.String(),
	})
}
