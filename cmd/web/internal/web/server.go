package web

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"syng.no/allsang/cmd/web/handlers/admin"
	"syng.no/allsang/cmd/web/handlers/api/song_api"
	"syng.no/allsang/cmd/web/handlers/content"
	"syng.no/allsang/cmd/web/handlers/rooms"
	"syng.no/allsang/cmd/web/internal/room"
	staticpkg "syng.no/allsang/cmd/web/internal/web/utils/static"
	"syng.no/allsang/cmd/web/prefs"
	"syng.no/allsang/internal/songbook"
)

type Webserver struct {
	*echo.Echo
	hub         *room.Hub
	catalog     *songbook.Catalog
	prefs       *prefs.Manager
	staticCache *staticpkg.StaticCache
}

func NewWebserver(catalog *songbook.Catalog, prefsManager *prefs.Manager) (*Webserver, error) {
	e := echo.New()

	staticCache, err := staticpkg.NewStaticCache()
	if err != nil {
		return nil, err
	}

	webserver := &Webserver{
		Echo:        e,
		hub:         room.NewHub(),
		catalog:     catalog,
		prefs:       prefsManager,
		staticCache: staticCache,
	}

	if err = webserver.registerRoutes(); err != nil {
		return nil, err
	}

	if err = webserver.setupMiddleware(); err != nil {
		return nil, err
	}

	return webserver, nil
}

// Hub exposes the room hub, mainly for tests.
func (s *Webserver) Hub() *room.Hub {
	return s.hub
}

func (s *Webserver) setupMiddleware() error {
	s.HideBanner = true
	s.HidePort = true
	s.Use(middleware.BodyLimit("2M"))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			// Long-lived SSE connections would flood the request log.
			switch c.Path() {
			case "/room/:code/stream", "/admin/rooms/stream":
				return true
			default:
				return false
			}
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))

	return nil
}

func (s *Webserver) registerRoutes() error {
	// Room API
	s.POST("/room", rooms.HandleCreate(s.hub))
	s.GET("/room/:code", rooms.HandleGet(s.hub))
	s.POST("/room/:code/command", rooms.HandleCommand(s.hub))
	s.POST("/room/:code/controllers", rooms.HandleRegisterController(s.hub))
	s.GET("/room/:code/stream", rooms.HandleStream(s.hub))

	// Song catalog API
	apiGroup := s.Group("/api")
	apiGroup.GET("/songs", song_api.HandleIndex(s.catalog))
	apiGroup.GET("/songs/:id", song_api.HandleGet(s.catalog))

	// Room monitor
	adminGroup := s.Group("/admin")
	adminGroup.GET("/rooms", content.HandleAdminRoomsPage())
	adminGroup.GET("/rooms/stream", admin.HandleRoomsStream(s.hub))
	adminGroup.POST("/rooms/:code/delete", admin.HandleRoomDelete(s.hub))

	// Health check
	s.GET("/healthz", func(c echo.Context) error {
		return c.String(200, "ok")
	})

	// Static file serving
	s.GET("/static/*", s.staticCache.ServeStaticFile("/static/"))

	// Content routes
	s.GET("/", content.HandleHomePage())
	s.GET("/join", content.HandleJoinPage(s.prefs))
	s.POST("/join", content.HandleJoinSubmit(s.hub, s.prefs))
	s.GET("/display/:code", content.HandleDisplayPage())
	s.GET("/control/:code", content.HandleControlPage())
	s.GET("/sang/:id", content.HandleSongPage())
	s.GET("/om-oss", content.HandleMarkdownPage("Om oss", "content/om-oss.md"))
	s.GET("/hvordan-bruke", content.HandleMarkdownPage("Hvordan bruke", "content/hvordan-bruke.md"))

	return nil
}
