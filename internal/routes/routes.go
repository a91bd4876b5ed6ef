package routes

import (
	"github.com/cardinal-wishlist/wishlist-backend/internal/handler"
	"github.com/cardinal-wishlist/wishlist-backend/internal/middleware"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers groups every HTTP handler mounted under /api/v2
type Handlers struct {
	Auth          *handler.AuthHandler
	User          *handler.UserHandler
	Wishlist      *handler.WishlistHandler
	Item          *handler.ItemHandler
	Claim         *handler.ClaimHandler
	Friend        *handler.FriendHandler
	SavedWishlist *handler.SavedWishlistHandler
}

// Options route-level settings
type Options struct {
	RedisClient       *redis.Client // nil disables rate limiting
	RequestsPerMinute int
	MaxUploadBytes    int64
}

// Setup configures all API routes
func Setup(router *gin.Engine, h *Handlers, jwtManager *jwt.Manager, opts Options) {
	limit := middleware.DefaultRateLimitConfig()
	if opts.RequestsPerMinute > 0 {
		limit.RequestsPerMinute = opts.RequestsPerMinute
	}

	api := router.Group("/api/v2")
	api.Use(middleware.RateLimit(opts.RedisClient, limit))
	if opts.MaxUploadBytes > 0 {
		api.Use(middleware.BodyLimit(opts.MaxUploadBytes))
	}

	auth := middleware.JWTAuth(jwtManager)
	optionalAuth := middleware.OptionalJWTAuth(jwtManager)

	// Authentication endpoints
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.Refresh)
	authGroup.POST("/logout", h.Auth.Logout)
	authGroup.GET("/me", auth, h.Auth.Me)

	// Users
	users := api.Group("/users", auth)
	users.GET("", h.User.List)
	users.GET("/:id", h.User.Get)
	users.PUT("/:id", h.User.Update)
	users.DELETE("/:id", h.User.Delete)

	// Wishlists: public views first (no auth)
	wishlists := api.Group("/wishlists")
	wishlists.GET("/public/:id", h.Wishlist.GetPublic)
	wishlists.GET("/public/:id/items", h.Wishlist.PublicItems)
	wishlists.GET("/user/:user_id", h.Wishlist.ListByUser)

	wishlists.POST("", auth, h.Wishlist.Create)
	wishlists.GET("", auth, h.Wishlist.ListMine)
	wishlists.GET("/:id", auth, h.Wishlist.Get)
	wishlists.PUT("/:id", auth, h.Wishlist.Update)
	wishlists.DELETE("/:id", auth, h.Wishlist.Delete)
	wishlists.GET("/:id/items", auth, h.Wishlist.Items)
	wishlists.POST("/:id/save", auth, h.SavedWishlist.Save)
	wishlists.DELETE("/:id/save", auth, h.SavedWishlist.Unsave)

	api.GET("/me/saved-wishlists", auth, h.SavedWishlist.List)

	// Items
	items := api.Group("/items")
	items.POST("", auth, h.Item.Create)
	items.GET("", auth, h.Item.ListMine)
	items.POST("/scrape", auth, h.Item.Scrape)
	items.GET("/:id", optionalAuth, h.Item.Get)
	items.PUT("/:id", auth, h.Item.Update)
	items.DELETE("/:id", auth, h.Item.Delete)

	// Claims (guests allowed)
	items.POST("/:id/claim", optionalAuth, h.Claim.Claim)
	items.DELETE("/:id/claim", optionalAuth, h.Claim.Unclaim)

	// Friends
	friends := api.Group("/friends", auth)
	friends.GET("/search", h.Friend.Search)
	friends.POST("/request", middleware.RateLimitPerUser(opts.RedisClient, 30), h.Friend.SendRequest)
	friends.GET("/requests", h.Friend.Incoming)
	friends.GET("/requests/outgoing", h.Friend.Outgoing)
	friends.POST("/requests/:id/accept", h.Friend.Accept)
	friends.POST("/requests/:id/decline", h.Friend.Decline)
	friends.GET("/list", h.Friend.Friends)
	friends.GET("/wishlists", h.Friend.Wishlists)
	friends.GET("/relationships", h.Friend.Relationships)
	friends.DELETE("/relationships/:id", h.Friend.Remove)
}
