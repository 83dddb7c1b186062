package handlers

import (
	"task-manager-api/domain/services"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService services.UserService
	TaskService services.TaskService
}

// Handlers contains all HTTP handlers
type Handlers struct {
	AuthHandler   *AuthHandler
	TaskHandler   *TaskHandler
	StatsHandler  *StatsHandler
	HealthHandler *HealthHandler
}

func NewHandlers(services *Services, serviceName string) *Handlers {
	return &Handlers{
		AuthHandler:   NewAuthHandler(services.UserService),
		TaskHandler:   NewTaskHandler(services.TaskService),
		StatsHandler:  NewStatsHandler(services.TaskService),
		HealthHandler: NewHealthHandler(serviceName),
	}
}
