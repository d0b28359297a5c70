package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/foodiapp/foodi-triggers/api/common"
	"github.com/foodiapp/foodi-triggers/model"
)

// handleDocumentEvent adapts one platform delivery to the dispatcher.
// A non-2xx response tells the platform to redeliver.
func (a *API) handleDocumentEvent(w http.ResponseWriter, r *http.Request) {
	var ev model.DocumentEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		common.RespondError(w, http.StatusBadRequest, "unable to decode event payload")
		return
	}
	if ev.Path == "" || ev.Change == "" {
		common.RespondError(w, http.StatusBadRequest, "event requires path and change")
		return
	}

	if err := a.App.Dispatcher.Dispatch(r.Context(), &ev); err != nil {
		logrus.WithError(err).WithField("path", ev.Path).Error("event dispatch failed")
		common.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRetentionSweep is the daily scheduled invocation; it carries no
// payload.
func (a *API) handleRetentionSweep(w http.ResponseWriter, r *http.Request) {
	cutoff := time.Now().AddDate(0, 0, -a.App.Config.RetentionDays)
	removed, err := a.App.ActivityService.SweepOlderThan(r.Context(), cutoff)
	if err != nil {
		logrus.WithError(err).Error("retention sweep failed")
		common.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{"removed": removed})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "OK", "timestamp": time.Now().Format(time.RFC3339)})
}
