package routes

import (
	"net/http"

	"agentw/agentw/controllers"

	"github.com/go-chi/chi/v5"
)

func AgentRoutes(ctrl *controllers.AgentController) chi.Router {
	r := chi.NewRouter()
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ctrl.Status())
	})
	return r
}
