package routes

import (
	"gofish/controllers"
	"gofish/websocket"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every controller the API exposes
type Handlers struct {
	Users     *controllers.UserController
	Scores    *controllers.ScoreController
	Tacklebox *controllers.TackleboxController
	World     *controllers.WorldController
	Hub       *websocket.Hub
}

// SetupUserRoutes sets up profile and progression routes
func SetupUserRoutes(router *gin.RouterGroup, uc *controllers.UserController) {
	router.POST("/user", uc.CreateOrGetUser)
	router.GET("/user/:device_id", uc.GetUser)

	// gin requires one wildcard name per path segment, so the id routes use
	// the same name as the device lookup.
	user := router.Group("/user/:device_id")
	{
		user.POST("/unlock-lure", withParam("id", uc.UnlockLure))
		user.POST("/update-high-score", withParam("id", uc.UpdateHighScore))
		user.POST("/increment-catches", withParam("id", uc.IncrementCatches))
		user.POST("/set-level", withParam("id", uc.SetLevel))
		user.POST("/prestige", withParam("id", uc.Prestige))
		user.POST("/unlock-achievement", withParam("id", uc.UnlockAchievement))
		user.POST("/complete-daily", withParam("id", uc.CompleteDaily))
	}
}

// SetupScoreRoutes sets up score submission and leaderboard routes
func SetupScoreRoutes(router *gin.RouterGroup, sc *controllers.ScoreController) {
	router.POST("/score", sc.SubmitScore)
	router.GET("/leaderboard", sc.GetLeaderboard)
}

// SetupTackleboxRoutes sets up catch history routes
func SetupTackleboxRoutes(router *gin.RouterGroup, tc *controllers.TackleboxController) {
	tacklebox := router.Group("/tacklebox/:user_id")
	{
		tacklebox.POST("/add-fish", tc.AddFish)
		tacklebox.GET("", tc.GetTacklebox)
	}
}

// SetupWorldRoutes sets up weather, daily challenge and achievement routes
func SetupWorldRoutes(router *gin.RouterGroup, wc *controllers.WorldController) {
	router.GET("/weather", wc.GetWeather)
	router.GET("/daily-challenge", wc.GetDailyChallenge)
	router.GET("/achievements", wc.GetAchievements)
}

// Register mounts the whole API under /api
func Register(router *gin.Engine, h Handlers) {
	api := router.Group("/api")
	SetupUserRoutes(api, h.Users)
	SetupScoreRoutes(api, h.Scores)
	SetupTackleboxRoutes(api, h.Tacklebox)
	SetupWorldRoutes(api, h.World)
	if h.Hub != nil {
		api.GET("/ws", h.Hub.Handler)
	}
}

// withParam exposes the device_id path segment under another name, for
// routes where that segment holds a user id.
func withParam(name string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: name, Value: c.Param("device_id")})
		handler(c)
	}
}
