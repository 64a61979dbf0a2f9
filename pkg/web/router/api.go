package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"
	"gorm.io/gorm"

	"yelpcamp/pkg/common/config"
	campdao "yelpcamp/pkg/core/campground/repository/dao/impl"
	campservice "yelpcamp/pkg/core/campground/service"
	userdao "yelpcamp/pkg/core/user/repository/dao/impl"
	userservice "yelpcamp/pkg/core/user/service"
	"yelpcamp/pkg/web/handler"
	"yelpcamp/pkg/web/middleware"
	"yelpcamp/pkg/web/session"
	"yelpcamp/pkg/web/templates"
)

type Dependencies struct {
	DB          *gorm.DB
	Users       *userservice.UserService
	Campgrounds *campservice.CampgroundService
	Sessions    *session.Manager
}

// NewDependencies 基于 db 构建仓储与服务
func NewDependencies(cfg *config.Config, db *gorm.DB, campOpts ...campservice.Option) Dependencies {
	userOpts := []userservice.Option{}
	if cfg.Session.HashCost > 0 {
		userOpts = append(userOpts, userservice.WithHashCost(cfg.Session.HashCost))
	}
	campOpts = append([]campservice.Option{campservice.WithOwnerOnly(cfg.OwnerOnly())}, campOpts...)

	return Dependencies{
		DB:          db,
		Users:       userservice.NewUserService(userdao.NewGormUserRepository(db), userOpts...),
		Campgrounds: campservice.NewCampgroundService(campdao.NewGormCampgroundRepository(db), campOpts...),
		Sessions:    session.NewManager(cfg.Session),
	}
}

// RegisterAPIs 安装模板渲染、中间件与全部路由
func RegisterAPIs(h *server.Hertz, cfg *config.Config, deps Dependencies) {
	healthHandler := handler.NewHealthCheckHandler(deps.DB)
	userHandler := handler.NewUserHandler(deps.Users, deps.Campgrounds, deps.Sessions)
	campHandler := handler.NewCampgroundHandler(deps.Campgrounds)

	// 渲染器最先挂载，恢复中间件才能渲染错误页
	h.Use(
		middleware.HTMLRenderMiddleware(templates.MustParse()),
		middleware.RecoveryMiddleware(cfg),
		middleware.LoggerMiddleware(),
		middleware.CORSMiddleware(cfg.Middleware.CORS),
		middleware.SecurityCheckMiddleware(cfg.Middleware.Security),
		middleware.TimeoutMiddleware(cfg.Middleware.Timeout.RequestTimeout),
		middleware.RateLimitMiddleware(
			cfg.Middleware.RateLimit.Rate,
			cfg.Middleware.RateLimit.Interval,
		),
		middleware.SessionMiddleware(deps.Sessions, deps.Users),
	)

	h.GET("/health", healthHandler.AdvancedHealthCheck)

	h.GET("/", campHandler.Landing)
	h.GET("/index", campHandler.Index)

	requireLogin := middleware.RequireLogin(cfg.Session)
	h.GET("/new", requireLogin, campHandler.NewPage)
	h.POST("/new", requireLogin, campHandler.Create)

	h.GET("/edit/:id", campHandler.EditPage)
	h.POST("/edit/:id", campHandler.Update)
	h.GET("/delete/:id", campHandler.Delete)

	h.GET("/register", userHandler.RegisterPage)
	h.POST("/register", userHandler.Register)
	h.GET("/login", userHandler.LoginPage)
	h.POST("/login", userHandler.Login)
	h.GET("/logout", userHandler.Logout)
	h.GET("/user/:id", userHandler.Profile)

	// 固定路径优先于 id 参数
	h.GET("/:id", campHandler.Show)
}
