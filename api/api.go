package api

import (
	"github.com/gorilla/mux"

	"github.com/foodiapp/foodi-triggers/api/common"
	"github.com/foodiapp/foodi-triggers/app"
)

// API foodi trigger api
type API struct {
	App    *app.App
	Config *common.Config
}

// New creates a new api
func New(a *app.App) (api *API, err error) {
	api = &API{App: a}
	api.Config, err = common.InitConfig()
	if err != nil {
		return nil, err
	}
	return api, nil
}

// Init registers the trigger surface consumed by the event-delivery
// platform.
func (a *API) Init(r *mux.Router) {
	r.HandleFunc("/triggers/document", a.handleDocumentEvent).Methods("POST")
	r.HandleFunc("/triggers/retention-sweep", a.handleRetentionSweep).Methods("POST")
	r.HandleFunc("/healthz", a.handleHealth).Methods("GET")
}
