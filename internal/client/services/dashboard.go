package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ehrdesk/internal/client/client"
	"github.com/dmitrijs2005/ehrdesk/internal/client/models"
	"github.com/dmitrijs2005/ehrdesk/internal/logging"
)

const countsPath = "/getCount"

type DashboardService interface {
	Counts(ctx context.Context) (models.Counts, error)
}

type dashboardService struct {
	client client.Client
	log    logging.Logger
}

func NewDashboardService(c client.Client, log logging.Logger) DashboardService {
	if log == nil {
		log = logging.Nop()
	}
	return &dashboardService{client: c, log: log}
}

func (s *dashboardService) Counts(ctx context.Context) (models.Counts, error) {
	var out models.Counts
	if err := s.client.Get(ctx, countsPath, &out); err != nil {
		s.log.Error(ctx, "failed to load counts", "error", err)
		return models.Counts{}, fmt.Errorf("dashboard counts: %w", err)
	}
	return out, nil
}
