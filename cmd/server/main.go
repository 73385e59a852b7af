package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/NavyAnt24/Chess/internal/controller"
	"github.com/NavyAnt24/Chess/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
)

var (
	addr     = flag.String("addr", ":3000", "address to listen on")
	origins  = flag.String("origins", "http://localhost:5173", "comma separated origins allowed to connect")
	wsBuffer = flag.Int("ws-buffer", 1024, "websocket read and write buffer size")
)

func main() {
	flag.Parse()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     *origins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Client-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		ExposeHeaders:    "X-Client-ID",
		AllowCredentials: true,
	}))
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Printf("%s %s %d %s", c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)

	controller.RegisterRoutes(app, gameService, websocket.Config{
		ReadBufferSize:  *wsBuffer,
		WriteBufferSize: *wsBuffer,
		Origins:         strings.Split(*origins, ","),
	})

	log.Printf("listening on %s", *addr)
	log.Fatal(app.Listen(*addr))
}
