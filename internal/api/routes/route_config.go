package routes

import (
	"recipehub/internal/api/handlers"
	"recipehub/internal/middleware"
	"recipehub/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	HomeHandler       handlers.HomeHandler
	ReferenceHandler  handlers.ReferenceHandler
	MembershipHandler handlers.MembershipHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Home()
	c.User()
	c.Recipes()
	c.References()
	c.Membership()
	c.GuestRoute()
}

func (c *Config) Home() {
	c.App.Get("/api/v1/home", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.HomeHandler.GetHome)
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Subscribe)
		user.Delete("/subscribe", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes")

	recipes.Get("/new", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.GetCreateContext)
	recipes.Post("", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.CreateRecipe)
	recipes.Get("/:id", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.RecipeHandler.GetRecipeDetail)
	recipes.Get("/:id/edit", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.GetUpdateContext)
	recipes.Put("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.DeleteRecipe)

	// bookmark toggle
	recipes.Post("/:id/save", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.SaveRecipe)
	recipes.Delete("/:id/save", c.Middleware.AuthMiddleware(c.JWTService), c.RecipeHandler.UnsaveRecipe)
}

func (c *Config) References() {
	references := c.App.Group("/api/v1/references")
	references.Get("/:kind", c.ReferenceHandler.List)

	admin := references.Group("", c.Middleware.AuthMiddleware(c.JWTService), c.Middleware.AdminMiddleware())
	admin.Post("/:kind", c.ReferenceHandler.Create)
	admin.Put("/:kind/:id", c.ReferenceHandler.Update)
	admin.Delete("/:kind/:id", c.ReferenceHandler.Delete)
}

func (c *Config) Membership() {
	c.App.Post("/api/v1/membership", c.Middleware.AuthMiddleware(c.JWTService), c.MembershipHandler.CreatePayment)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.MembershipHandler.MidtransWebhookHandler)
}
