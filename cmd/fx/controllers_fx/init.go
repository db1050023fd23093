package controllers_fx

import (
	"go.uber.org/fx"

	"wanderlust/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewItineraryController))
