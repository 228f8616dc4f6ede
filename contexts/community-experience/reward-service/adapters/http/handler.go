package httpadapter

import (
	"context"
	"log/slog"

	"impulse/contexts/community-experience/reward-service/application"
	httptransport "impulse/contexts/community-experience/reward-service/transport/http"
)

type Handler struct {
	Rewards application.Service
	Logger  *slog.Logger
}

func (h Handler) UserPointsHandler(ctx context.Context, userID string) (httptransport.UserPointsResponse, error) {
	points, err := h.Rewards.UserPoints(ctx, userID)
	if err != nil {
		return httptransport.UserPointsResponse{}, err
	}
	return httptransport.UserPointsResponse{
		UserID:      points.UserID,
		TotalPoints: points.TotalPoints,
		Grants:      points.Grants,
		UpdatedAt:   points.UpdatedAt,
	}, nil
}
