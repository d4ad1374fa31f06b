package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	middlewareLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/zhoukk/slidegen/internal/api"
	"github.com/zhoukk/slidegen/internal/gemini"
	"github.com/zhoukk/slidegen/internal/middleware"
	"github.com/zhoukk/slidegen/internal/service"
	"github.com/zhoukk/slidegen/pkg/config"
	"github.com/zhoukk/slidegen/pkg/deck"
	"github.com/zhoukk/slidegen/pkg/logger"
	"github.com/zhoukk/slidegen/pkg/util"
)

type Server struct {
	app *fiber.App

	// 各个service
	contentSrv      service.ContentService
	presentationSrv service.PresentationService
}

func New() *Server {
	return &Server{}
}

func (s *Server) Start() error {
	// 创建Fiber实例
	s.app = fiber.New(fiber.Config{
		AppName:               config.GetString("server.app_name"),
		EnablePrintRoutes:     config.GetBool("server.print_routes"),
		DisableStartupMessage: true,
	})

	// 确保输出目录存在
	if err := util.EnsureDir(config.GetString("output.dir")); err != nil {
		logger.Error("创建输出目录失败", logger.F("error", err))
		return err
	}

	s.setupServices()

	// 配置中间件
	s.setupMiddleware()

	// 配置路由
	s.setupRoutes()

	// 启动服务器
	addr := config.GetServerAddress()
	logger.Info("服务监听地址", logger.F("address", addr))

	// 优雅关闭
	go s.gracefulShutdown()

	if err := s.app.Listen(addr); err != nil {
		logger.Error("服务停止", logger.F("error", err))
		return err
	}
	return nil
}

func (s *Server) gracefulShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务关闭中...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.app.ShutdownWithContext(ctx); err != nil {
		logger.Error("服务关闭失败", logger.F("error", err))
	}

	logger.Info("服务已关闭")
}

// setupServices 配置服务层
func (s *Server) setupServices() {
	// 上游生成服务客户端
	client := gemini.NewClient(
		config.GetString("gemini.base_url"),
		config.GetString("gemini.api_key"),
		config.GetString("gemini.model"),
		time.Duration(config.GetInt("gemini.timeout"))*time.Second,
	)
	cache := service.NewContentCache(config.GetInt("cache.max_size"))
	s.contentSrv = service.NewContentService(client, cache)

	// 文档生成器，按宽高比注册模板
	generator := deck.NewGenerator()
	generator.RegisterTemplate(deck.AspectWidescreen, config.GetString("templates.widescreen"))
	generator.RegisterTemplate(deck.AspectStandard, config.GetString("templates.standard"))
	s.presentationSrv = service.NewPresentationService(generator, config.GetInt64("render.max_concurrent"))
}

// setupMiddleware 配置中间件
func (s *Server) setupMiddleware() {
	// 异常恢复
	s.app.Use(recover.New())

	// CORS
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetString("security.allowed_origins"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// 访问日志
	s.app.Use(middlewareLogger.New(middlewareLogger.Config{
		Format:     "[${ip}]-${time} ${status} ${latency} ${method} ${path} | ${error}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))
}

// setupRoutes 配置路由
func (s *Server) setupRoutes() {
	api.RegisterPresentationHandler(s.contentSrv, s.presentationSrv, config.GetString("output.dir"))

	// 欢迎页
	s.app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to the Slide Generator API."})
	})

	// 健康检查
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	// 生成接口单独限流
	root := s.app.Group("/")
	if config.GetBool("rate_limit.enabled") {
		root.Use(middleware.RateLimit(
			config.GetInt("rate_limit.max_requests"),
			time.Duration(config.GetInt("rate_limit.duration"))*time.Second,
		))
	}

	for _, handler := range api.Handlers {
		handler.RegisterRoutes(root)
	}
}
