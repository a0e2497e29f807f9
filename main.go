package main

import (
	"fmt"
	"time"

	"mockchat/controller"
	"mockchat/platform"
	"mockchat/service"

	_uuid "github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CORSMiddleware ...
// CORS (Cross-Origin Resource Sharing)
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "http://localhost")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Origin, Authorization, Accept, Client-Security-Token, Accept-Encoding, x-access-token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		if c.Request.Method == "OPTIONS" {
			fmt.Println("OPTIONS")
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := _uuid.New()
		c.Writer.Header().Set("X-Request-Id", uuid.String())
		c.Set("requestId", uuid.String())
		c.Next()
	}
}

func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)

		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		userAgent := c.Request.UserAgent()
		requestId := c.GetString("requestId")

		logrus.Infof(
			" [%s] %d | %v | %s | %s | %s | %s ",
			requestId,
			status,
			latency,
			clientIP,
			method,
			path,
			userAgent,
		)
	}
}

var auth = new(controller.AuthController)

// TokenAuthMiddleware ...
// Resolves the "self" participant from the access token on each request that
// needs an identity
func TokenAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth.TokenValid(c)
		c.Next()
	}
}

func main() {
	fmt.Println("Mock chat server started...")

	//Load the .env file
	err := godotenv.Load(".env")
	if err != nil {
		fmt.Println("failed to load the env file")
	}

	platform.InitFile("./log", "gin")

	cfg := platform.LoadConfig()

	cache := service.NewConversationCache(service.NewTemplateStore(), service.NewSynthesizer())
	sessions := service.NewSessionManager(cache, cfg)
	controller.Setup(controller.Deps{
		Cache:     cache,
		Sessions:  sessions,
		Outbox:    service.NewOutbox(cache, cfg),
		Directory: service.NewDirectory(cache),
		Config:    cfg,
	})

	r := gin.Default()
	r.Use(CORSMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware())

	api := r.Group("/api/private_messages")
	{
		api.POST("/auth/token", auth.IssueToken)

		chat := new(controller.ChatController)
		api.GET("/chats/", TokenAuthMiddleware(), chat.ListChats)
		api.POST("/chats/", TokenAuthMiddleware(), chat.OpenChat)
		api.POST("/chats/:chatId/enter/", TokenAuthMiddleware(), chat.EnterChat)
		api.POST("/chats/:chatId/leave/", TokenAuthMiddleware(), chat.LeaveChat)
		api.GET("/chats/:chatId/messages/", TokenAuthMiddleware(), chat.GetMessages)
		api.POST("/chats/:chatId/messages/", TokenAuthMiddleware(), chat.PostMessage)
		api.GET("/chats/:chatId/typing/", TokenAuthMiddleware(), chat.Typing)
		api.PATCH("/messages/:messageId/", TokenAuthMiddleware(), chat.MarkRead)
	}

	c := cron.New()
	c.AddFunc("@every 1m", func() {
		conversations, messages := cache.Stats()
		platform.Logger.Infof("[stats] %d cached conversations, %d messages, %d active sessions",
			conversations, messages, sessions.Active())
	})
	c.Start()

	r.Run(":" + cfg.Port)
}
