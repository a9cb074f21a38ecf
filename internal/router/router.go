// Package router assembles the gin engine: middlewares, operational routes and the API.
package router

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/comment"
	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/follow"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/handler"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/middleware"
	"github.com/VitaminP8/yatube/internal/observability"
	"github.com/VitaminP8/yatube/internal/permission"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/user"
)

// Storages is one backend's set of storages.
type Storages struct {
	Users    user.UserStorage
	Groups   group.GroupStorage
	Posts    post.PostStorage
	Comments comment.CommentStorage
	Follows  follow.FollowStorage
}

type pinger interface {
	PingContext(ctx context.Context) error
}

type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	Storages Storages
	// GroupCache, DB, Redis and Metrics are optional. DB must be a nil
	// interface, not a typed nil, when there is no database.
	GroupCache group.Cache
	DB         pinger
	Redis      *redis.Client
	Metrics    *observability.HTTPMetrics
	UserOpts   []user.Option
}

func New(d Deps) *gin.Engine {
	cfg := d.Config
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(handler.NotFound)
	engine.NoMethod(handler.MethodNotAllowed)

	engine.Use(middleware.RequestID(), middleware.RequestLogger(log), middleware.Recovery(log))
	if cfg.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORSAllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders: []string{"Location", middleware.RequestIDHeader},
		}))
	}
	if d.Metrics != nil {
		engine.Use(d.Metrics.Middleware())
		engine.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	handler.NewHealthHandler(d.DB, d.Redis, log).RegisterRoutes(engine)

	mediaStorage := media.NewStorage(cfg.Media.Root, cfg.Media.URL)
	engine.Static(mediaStorage.URLPrefix(), mediaStorage.Root())

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	policy := permission.Policy{ReadRequiresAuth: cfg.Auth.ReadRequiresAuth}
	s := d.Storages

	groups := group.NewService(s.Groups, d.GroupCache, policy, log)
	posts := post.NewService(s.Posts, s.Groups, policy, post.WithImageStore(mediaStorage))
	comments := comment.NewService(s.Comments, s.Posts, policy)
	follows := follow.NewService(s.Follows, s.Users)
	users := user.NewService(s.Users, tokens, d.UserOpts...)

	api := engine.Group(cfg.APIPrefix, auth.Middleware(tokens))
	content := api.Group("", auth.RequireAuth(!cfg.Auth.ReadRequiresAuth))
	handler.NewGroupHandler(groups, log).RegisterRoutes(content)
	handler.NewPostHandler(posts, mediaStorage, log).RegisterRoutes(content)
	handler.NewCommentHandler(comments, log).RegisterRoutes(content)

	handler.NewFollowHandler(follows, log).RegisterRoutes(api.Group("", auth.RequireAuth(false)))

	var throttle gin.HandlerFunc
	if cfg.Auth.TokenRateLimit > 0 {
		throttle = middleware.NewIPThrottle(cfg.Auth.TokenRateLimit, cfg.Auth.TokenRateBurst).Middleware()
	}
	handler.NewUserHandler(users, throttle, log).RegisterRoutes(api)

	return engine
}
