package internal

import (
	"github.com/rios0rios0/pkgsync/internal/domain/entities"
	"github.com/rios0rios0/pkgsync/internal/infrastructure/controllers"
)

// AppInternal holds everything the CLI needs once the container is resolved.
type AppInternal struct {
	controllers    []entities.Controller
	syncController *controllers.SyncController
}

// NewAppInternal creates the AppInternal from the registered controllers.
func NewAppInternal(
	controllerList *[]entities.Controller,
	syncController *controllers.SyncController,
) *AppInternal {
	return &AppInternal{
		controllers:    *controllerList,
		syncController: syncController,
	}
}

// GetControllers returns every controller exposed as a subcommand.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// GetSyncController returns the controller run by the root command.
func (it *AppInternal) GetSyncController() *controllers.SyncController {
	return it.syncController
}
