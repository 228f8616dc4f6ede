package httpadapter

import (
	"context"
	"log/slog"

	"impulse/contexts/identity-access/capability-service/application/queries"
	httptransport "impulse/contexts/identity-access/capability-service/transport/http"
)

type Handler struct {
	Permissions queries.ResolvePermissionsUseCase
	Logger      *slog.Logger
}

func (h Handler) ResolvePermissionsHandler(
	ctx context.Context,
	req httptransport.ResolvePermissionsRequest,
) (httptransport.PermissionSetResponse, error) {
	set, err := h.Permissions.Execute(ctx, queries.ResolvePermissionsQuery{
		UserID:      req.UserID,
		ChallengeID: req.ChallengeID,
	})
	if err != nil {
		return httptransport.PermissionSetResponse{}, err
	}
	return httptransport.PermissionSetResponse{
		Read:           set.Read,
		Update:         set.Update,
		Delete:         set.Delete,
		SubmitEvidence: set.SubmitEvidence,
		Validate:       set.Validate,
		Comment:        set.Comment,
		Report:         set.Report,
		Moderate:       set.Moderate,
	}, nil
}
