package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/vietanh2810/eventpal-api/docs"
	v1 "github.com/vietanh2810/eventpal-api/internal/api/handler/v1"
	"github.com/vietanh2810/eventpal-api/internal/api/middleware"
	"github.com/vietanh2810/eventpal-api/internal/config"
	"github.com/vietanh2810/eventpal-api/internal/domain"
	"github.com/vietanh2810/eventpal-api/internal/repository"
	"github.com/vietanh2810/eventpal-api/internal/service"
)

type Server struct {
	Config   *config.AppConfig
	Router   *gin.Engine
	Registry *service.Registry
}

func NewServer(conf *config.AppConfig, records repository.RecordDAO, opts ...service.Option) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	opts = append([]service.Option{service.WithThemeApplier(logTheme)}, opts...)

	s := &Server{
		Config:   conf,
		Router:   engine,
		Registry: service.NewRegistry(records, conf.Storage.KeyPrefix, opts...),
	}

	s.MountMiddlewares()

	authHandler := v1.NewAuthHandler(s.Config.API, s.Registry)
	eventHandler := v1.NewEventHandler(s.Registry)
	preferenceHandler := v1.NewPreferenceHandler(s.Registry)
	stateHandler := v1.NewStateHandler(s.Registry, s.Config.API.AllowedCORSDomains)
	s.MountHandlers(authHandler, eventHandler, preferenceHandler, stateHandler)

	return s
}

func logTheme(theme domain.Theme) {
	zap.L().Debug("theme applied", zap.String("theme", string(theme)))
}

func (s *Server) MountMiddlewares() {
	// Recovery is needed unless we use gin.Default().
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.Logger())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	eventHandler *v1.EventHandler,
	preferenceHandler *v1.PreferenceHandler,
	stateHandler *v1.StateHandler,
) {
	const basePath = "/api/v1"

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	public := s.Router.Group(basePath, middleware.Profile(), middleware.SimulateLatency(s.Config.API.SimulatedLatency))
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/session", stateHandler.HandleGetSession)
		public.GET("/state/ws", stateHandler.HandleStateStream)

		public.GET("/events", eventHandler.HandleGetEvents)
		public.GET("/events/categories", eventHandler.HandleGetCategories)
		public.GET("/events/:eventID", eventHandler.HandleGetEvent)
		public.GET("/events/:eventID/related", eventHandler.HandleGetRelated)

		public.GET("/filters", preferenceHandler.HandleGetFilters)
		public.PUT("/filters", preferenceHandler.HandleSetFilters)
		public.GET("/theme", preferenceHandler.HandleGetTheme)
		public.PUT("/theme", preferenceHandler.HandleSetTheme)
		public.POST("/theme/toggle", preferenceHandler.HandleToggleTheme)
	}

	private := s.Router.Group(basePath, middleware.Profile(), verifyJWT, middleware.SimulateLatency(s.Config.API.SimulatedLatency))
	{
		private.POST("/auth/logout", authHandler.HandleLogout)
		private.PUT("/profile", authHandler.HandleUpdateProfile)
		private.GET("/profile/events", authHandler.HandleProfileEvents)

		private.POST("/events", eventHandler.HandleCreateEvent)
		private.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		private.DELETE("/events/:eventID", eventHandler.HandleDeleteEvent)
		private.POST("/events/:eventID/attendance", eventHandler.HandleToggleAttendance)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "EventPal API"
	docs.SwaggerInfo.Description = "Events, accounts and preferences of EventPal."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
