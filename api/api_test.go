package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodiapp/foodi-triggers/api/common"
	"github.com/foodiapp/foodi-triggers/app"
	"github.com/foodiapp/foodi-triggers/app/activity"
	"github.com/foodiapp/foodi-triggers/app/config"
	"github.com/foodiapp/foodi-triggers/app/event"
	"github.com/foodiapp/foodi-triggers/app/stats"
	"github.com/foodiapp/foodi-triggers/consts"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/store/memstore"
)

func newTestAPI(t *testing.T) (*memstore.Store, *mux.Router) {
	t.Helper()

	ms := memstore.New()
	conf := &config.Config{RetentionDays: 14}
	repos := &model.Repos{Store: ms}

	statsService := stats.NewService(repos, conf)
	d := event.NewDispatcher(nil, time.Hour)
	d.Register(consts.PathPostLike, model.ChangeCreated, "stats.likes", statsService.HandleLikeChanged)

	a := &API{
		App: &app.App{
			Config:          conf,
			Repos:           repos,
			StatsService:    statsService,
			ActivityService: activity.NewService(repos, conf),
			Dispatcher:      d,
		},
		Config: &common.Config{Port: 8080},
	}

	r := mux.NewRouter()
	a.Init(r)
	return ms, r
}

func TestDocumentEventEndpoint(t *testing.T) {
	ms, r := newTestAPI(t)
	require.NoError(t, ms.Set(context.Background(), consts.Posts, "p1", model.Post{ID: "p1"}))

	body := `{"id":"d1","path":"posts/p1/post-likes/u2","change":"created"}`
	req := httptest.NewRequest(http.MethodPost, "/triggers/document", strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var post model.Post
	require.NoError(t, ms.Get(context.Background(), consts.Posts, "p1", &post))
	assert.Equal(t, 1, post.Likes)
}

func TestDocumentEventRequiresPathAndChange(t *testing.T) {
	_, r := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/triggers/document", strings.NewReader(`{"id":"d1"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDocumentEventRejectsBadJSON(t *testing.T) {
	_, r := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/triggers/document", strings.NewReader("{"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

// A failing rule must surface as a 5xx so the platform redelivers.
func TestDocumentEventFailureTriggersRedelivery(t *testing.T) {
	_, r := newTestAPI(t)

	// like on a missing post makes the counter update fail
	body := `{"id":"d2","path":"posts/missing/post-likes/u2","change":"created"}`
	req := httptest.NewRequest(http.MethodPost, "/triggers/document", strings.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRetentionSweepEndpoint(t *testing.T) {
	ms, r := newTestAPI(t)
	ctx := context.Background()

	require.NoError(t, ms.Set(ctx, consts.Activity, "old",
		model.Activity{ID: "old", UID: "u1", Timestamp: time.Now().AddDate(0, 0, -30)}))
	require.NoError(t, ms.Set(ctx, consts.Activity, "fresh",
		model.Activity{ID: "fresh", UID: "u1", Timestamp: time.Now()}))

	req := httptest.NewRequest(http.MethodPost, "/triggers/retention-sweep", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"removed":1}`, rr.Body.String())
	assert.Equal(t, 1, ms.Count(consts.Activity))
}

func TestHealthEndpoint(t *testing.T) {
	_, r := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
