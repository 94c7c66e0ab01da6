package api

import (
	"github.com/mcportal/agenda-sync/app/database"
	"github.com/mcportal/agenda-sync/app/event"
	"github.com/mcportal/agenda-sync/app/tasks"
)

type Handler struct {
	eventRepo database.EventRepository
	unitRepo  database.UnitRepository
	snapshot  *event.Snapshot
	scheduler tasks.TaskSchedulerInterface
}
