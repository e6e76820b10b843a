package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/config"
	"github.com/recipeshare/internal/handler"
	applog "github.com/recipeshare/internal/log"
	"gorm.io/gorm"
)

const sessionCookieName = "recipeshare_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, cfg config.AppConfig) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(applog.GinLogger(), gin.Recovery())

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionCookieName, store))

	api := handler.NewAPI(gdb, cfg)
	r.Use(api.CurrentUser())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// 会话
	r.POST("/login", api.Login)
	r.DELETE("/logout", api.Logout)
	r.GET("/check_session", api.CheckSession)
	r.DELETE("/clear_session", api.ClearSession)
	r.POST("/signup", api.Signup)

	// 用户
	r.GET("/users", api.ListUsers)
	r.GET("/users/:id", api.GetUser)
	r.PATCH("/users/:id", api.UpdateUser)
	r.DELETE("/users/:id", api.DeleteUser)
	r.POST("/users/:id/recipes/:recipeId/comments", api.CreateComment)

	// 菜谱
	r.GET("/recipes", api.ListRecipes)
	r.POST("/recipes", api.CreateRecipe)
	r.GET("/recipes/:id", api.GetRecipe)
	r.PATCH("/recipes/:id", api.UpdateRecipe)
	r.DELETE("/recipes/:id", api.DeleteRecipe)
	r.GET("/recipes/:id/comments", api.ListRecipeComments)
	r.GET("/new_recipes", api.ListNewRecipes)
	r.GET("/ingredients", api.ListIngredients)

	// 收藏与评分
	r.GET("/favorite_recipes/:userId", api.ListFavoriteRecipes)
	r.POST("/favorite_recipes/:userId/:recipeId", api.FavoriteRecipe)
	r.DELETE("/favorite_recipes/:userId/:recipeId", api.UnfavoriteRecipe)
	r.GET("/recipe_ratings/:recipeId", api.ListRecipeRatings)
	r.POST("/recipe_ratings/:recipeId", api.RateRecipe)

	// 资料
	r.GET("/profiles/:id", api.GetProfile)
	r.PATCH("/profiles/:id", api.UpdateProfile)
	r.DELETE("/profiles/:id", api.DeleteProfile)

	// 日志与上传
	auth := r.Group("")
	auth.Use(handler.AuthRequired())
	{
		auth.POST("/submit_journal_entry_form", api.SubmitJournalEntry)
		auth.GET("/journal_entries", api.ListJournalEntries)
		auth.GET("/journal_entries/:id", api.GetJournalEntry)
	}
	r.GET("/uploads/journal_images", api.ListJournalImages)
	r.GET("/uploads/:folder/:filename", api.ServeUpload)

	return r, nil
}
