package missions

import (
	missiondomain "brawl-missions/internal/domain/mission"
	"brawl-missions/pkg/logger"
)

type Handlers struct {
	Viewing    *missiondomain.ViewingService
	Management *missiondomain.ManagementService
	Operation  *missiondomain.OperationService
	log        logger.Logger
}

func New(viewing *missiondomain.ViewingService, management *missiondomain.ManagementService, operation *missiondomain.OperationService, log logger.Logger) *Handlers {
	return &Handlers{
		Viewing:    viewing,
		Management: management,
		Operation:  operation,
		log:        log,
	}
}
