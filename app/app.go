package app

import (
	"github.com/sirupsen/logrus"

	"github.com/foodiapp/foodi-triggers/app/activity"
	"github.com/foodiapp/foodi-triggers/app/cleanup"
	"github.com/foodiapp/foodi-triggers/app/config"
	"github.com/foodiapp/foodi-triggers/app/event"
	"github.com/foodiapp/foodi-triggers/app/notification"
	"github.com/foodiapp/foodi-triggers/app/propagation"
	"github.com/foodiapp/foodi-triggers/app/restaurant"
	"github.com/foodiapp/foodi-triggers/app/stats"
	"github.com/foodiapp/foodi-triggers/cache"
	"github.com/foodiapp/foodi-triggers/consts"
	"github.com/foodiapp/foodi-triggers/model"
	"github.com/foodiapp/foodi-triggers/storage"
	"github.com/foodiapp/foodi-triggers/store/mongostore"
)

// App our application
type App struct {
	Config *config.Config
	Repos  *model.Repos

	PropagationService  propagation.Service
	StatsService        stats.Service
	CleanupService      cleanup.Service
	ActivityService     activity.Service
	NotificationService notification.Service
	RestaurantService   restaurant.Service

	Dispatcher *event.Dispatcher

	store *mongostore.Store
}

// New create a new app
func New() (*App, error) {
	appConf, err := config.InitConfig()
	if err != nil {
		return nil, err
	}

	mongoConf, err := mongostore.InitConfig()
	if err != nil {
		return nil, err
	}

	cacheConf, err := cache.InitConfig()
	if err != nil {
		return nil, err
	}

	storageConf, err := storage.InitConfig()
	if err != nil {
		return nil, err
	}

	documentStore, err := mongostore.New(mongoConf)
	if err != nil {
		return nil, err
	}

	fileStore, err := storage.New(storageConf)
	if err != nil {
		return nil, err
	}

	repos := &model.Repos{
		Store: documentStore,
		Files: fileStore,
		Cache: cache.New(cacheConf),
	}

	app := &App{
		Config:              appConf,
		Repos:               repos,
		PropagationService:  propagation.NewService(repos, appConf),
		StatsService:        stats.NewService(repos, appConf),
		CleanupService:      cleanup.NewService(repos, appConf),
		ActivityService:     activity.NewService(repos, appConf),
		NotificationService: notification.NewService(repos, appConf),
		RestaurantService:   restaurant.NewService(repos, appConf),
		store:               documentStore,
	}

	var claims event.DeliveryClaims
	if appConf.DedupEnabled {
		claims = repos.Cache
	}
	app.Dispatcher = buildDispatcher(app, claims)

	return app, nil
}

// buildDispatcher registers every trigger rule. Rules sharing a path
// run independently of each other.
func buildDispatcher(a *App, claims event.DeliveryClaims) *event.Dispatcher {
	d := event.NewDispatcher(claims, a.Config.DedupTTL)

	// user edits fan out to denormalized copies
	d.Register(consts.PathUser, model.ChangeUpdated, "propagation.username", a.PropagationService.HandleUsernameChanged)
	d.Register(consts.PathUser, model.ChangeUpdated, "propagation.fullname", a.PropagationService.HandleFullnameChanged)
	d.Register(consts.PathUser, model.ChangeUpdated, "propagation.profileImage", a.PropagationService.HandleProfileImageChanged)
	d.Register(consts.PathUser, model.ChangeUpdated, "propagation.privateMode", a.PropagationService.HandlePrivateModeChanged)

	// aggregate counters
	d.Register(consts.PathPostLike, model.ChangeCreated, "stats.likes", a.StatsService.HandleLikeChanged)
	d.Register(consts.PathPostLike, model.ChangeDeleted, "stats.likes", a.StatsService.HandleLikeChanged)
	d.Register(consts.PathPostComment, model.ChangeCreated, "stats.comments", a.StatsService.HandleCommentChanged)
	d.Register(consts.PathPostComment, model.ChangeDeleted, "stats.comments", a.StatsService.HandleCommentChanged)
	d.Register(consts.PathRestaurantCollection, model.ChangeCreated, "stats.restaurantCollections", a.StatsService.HandleRestaurantCollectionChanged)
	d.Register(consts.PathRestaurantCollection, model.ChangeDeleted, "stats.restaurantCollections", a.StatsService.HandleRestaurantCollectionChanged)
	d.Register(consts.PathPost, model.ChangeCreated, "stats.restaurantPosts", a.StatsService.HandleRestaurantPostChanged)
	d.Register(consts.PathPost, model.ChangeDeleted, "stats.restaurantPosts", a.StatsService.HandleRestaurantPostChanged)
	d.Register(consts.PathPost, model.ChangeCreated, "stats.userPosts", a.StatsService.HandleUserPostChanged)
	d.Register(consts.PathPost, model.ChangeDeleted, "stats.userPosts", a.StatsService.HandleUserPostChanged)
	d.Register(consts.PathCollection, model.ChangeCreated, "stats.userCollections", a.StatsService.HandleUserCollectionChanged)
	d.Register(consts.PathCollection, model.ChangeDeleted, "stats.userCollections", a.StatsService.HandleUserCollectionChanged)
	d.Register(consts.PathFollower, model.ChangeCreated, "stats.followers", a.StatsService.HandleFollowerChanged)
	d.Register(consts.PathFollower, model.ChangeDeleted, "stats.followers", a.StatsService.HandleFollowerChanged)
	d.Register(consts.PathFollowing, model.ChangeCreated, "stats.following", a.StatsService.HandleFollowingChanged)
	d.Register(consts.PathFollowing, model.ChangeDeleted, "stats.following", a.StatsService.HandleFollowingChanged)

	// feed activity
	d.Register(consts.PathPost, model.ChangeCreated, "activity.newPost", a.ActivityService.HandlePostCreated)
	d.Register(consts.PathCollection, model.ChangeCreated, "activity.newCollection", a.ActivityService.HandleCollectionCreated)
	d.Register(consts.PathCollectionItem, model.ChangeCreated, "activity.newItem", a.ActivityService.HandleItemCreated)

	// inbox notifications
	d.Register(consts.PathPostLike, model.ChangeCreated, "notification.like", a.NotificationService.HandleLikeCreated)
	d.Register(consts.PathPostComment, model.ChangeCreated, "notification.comment", a.NotificationService.HandleCommentCreated)
	d.Register(consts.PathFollower, model.ChangeCreated, "notification.follow", a.NotificationService.HandleFollowCreated)

	// restaurant reverse index
	d.Register(consts.PathCollectionItem, model.ChangeCreated, "restaurant.link", a.RestaurantService.HandleItemCreated)
	d.Register(consts.PathCollectionItem, model.ChangeDeleted, "restaurant.unlink", a.RestaurantService.HandleItemDeleted)

	// cascades and blob maintenance
	d.Register(consts.PathCollection, model.ChangeDeleted, "cleanup.collectionItems", a.CleanupService.DeleteCollectionItems)
	d.Register(consts.PathCollection, model.ChangeDeleted, "cleanup.collectionActivity", a.CleanupService.DeleteCollectionActivity)
	d.Register(consts.PathCollection, model.ChangeDeleted, "cleanup.collectionCover", a.CleanupService.DeleteCollectionCover)
	d.Register(consts.PathCollection, model.ChangeUpdated, "cleanup.replacedCover", a.CleanupService.DeleteReplacedCollectionCover)
	d.Register(consts.PathPost, model.ChangeDeleted, "cleanup.postLikes", a.CleanupService.DeletePostLikes)
	d.Register(consts.PathPost, model.ChangeDeleted, "cleanup.postComments", a.CleanupService.DeletePostComments)
	d.Register(consts.PathPost, model.ChangeDeleted, "cleanup.postActivity", a.CleanupService.DeletePostActivity)
	d.Register(consts.PathPost, model.ChangeDeleted, "cleanup.postMedia", a.CleanupService.DeletePostMedia)
	d.Register(consts.PathUser, model.ChangeDeleted, "cleanup.profileImage", a.CleanupService.DeleteUserProfileImage)

	return d
}

// Close closes application handles and connections
func (a *App) Close() {
	logrus.Info("closing connection to document store")
	if err := a.store.Close(); err != nil {
		logrus.Error("unable to close connection to document store ", err)
	}
	if err := a.Repos.Cache.Close(); err != nil {
		logrus.Error("unable to close connection to cache ", err)
	}
}
