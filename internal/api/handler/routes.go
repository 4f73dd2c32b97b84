package handler

import (
	"net/http"

	"github.com/vfg2006/product-feed-api/internal/api/handler/router"
	"github.com/vfg2006/product-feed-api/internal/config"
	"github.com/vfg2006/product-feed-api/internal/usecases/generating"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Feeds(generator generating.FeedGenerator, cfg *config.Config) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reports",
			Method:  http.MethodPost,
			Handler: UploadReport(generator, cfg),
		},
		{
			Path:    "/v1/feeds/:id",
			Method:  http.MethodGet,
			Handler: GetFeed(cfg),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
