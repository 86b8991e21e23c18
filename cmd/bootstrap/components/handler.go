package components

import (
	"cinema-seat-hold/internal/handler"
	"cinema-seat-hold/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewHoldHandler,
		api.NewScreeningHandler,
	),
	fx.Invoke(handler.NewRouter),
)
