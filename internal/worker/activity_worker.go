package worker

import (
	"github.com/spec-kit/realty-service/internal/service"
)

// StartActivityWorker registers audit handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
