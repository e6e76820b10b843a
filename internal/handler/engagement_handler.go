package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/service"
)

type ratingRequest struct {
	UserID uint     `json:"user_id"`
	Rating *float64 `json:"rating"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// FavoriteRecipe 收藏菜谱，重复收藏返回 400
func (a *API) FavoriteRecipe(c *gin.Context) {
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	recipeID, ok := uintParam(c, "recipeId")
	if !ok {
		return
	}

	favorite, err := a.engagement.Favorite(c.Request.Context(), userID, recipeID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  localize(c, msgFavorited),
		"favorite": newFavoriteView(favorite),
	})
}

// UnfavoriteRecipe 取消收藏，未收藏时返回 400
func (a *API) UnfavoriteRecipe(c *gin.Context) {
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}
	recipeID, ok := uintParam(c, "recipeId")
	if !ok {
		return
	}

	if err := a.engagement.Unfavorite(c.Request.Context(), userID, recipeID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFavoriteRecipes 返回用户收藏的菜谱
func (a *API) ListFavoriteRecipes(c *gin.Context) {
	userID, ok := uintParam(c, "userId")
	if !ok {
		return
	}

	recipes, err := a.engagement.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newFavoriteRecipeViews(recipes))
}

// RateRecipe 为菜谱新增一条评分
func (a *API) RateRecipe(c *gin.Context) {
	recipeID, ok := uintParam(c, "recipeId")
	if !ok {
		return
	}

	var req ratingRequest
	if !bindJSON(c, &req, msgBadRating) {
		return
	}

	rating, err := a.engagement.Rate(c.Request.Context(), recipeID, service.RatingInput{
		UserID: req.UserID,
		Rating: req.Rating,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": localize(c, msgRated),
		"rating":  newRatingView(*rating),
	})
}

// ListRecipeRatings 返回菜谱的全部评分
func (a *API) ListRecipeRatings(c *gin.Context) {
	recipeID, ok := uintParam(c, "recipeId")
	if !ok {
		return
	}

	ratings, err := a.engagement.ListRatings(c.Request.Context(), recipeID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRatingViews(ratings))
}

// CreateComment 以路径中的用户身份评论菜谱。
// 路由为 /users/:id/recipes/:recipeId/comments，:id 与 /users/:id 共用参数名。
func (a *API) CreateComment(c *gin.Context) {
	userID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	recipeID, ok := uintParam(c, "recipeId")
	if !ok {
		return
	}

	var req commentRequest
	if !bindJSON(c, &req, msgBadComment) {
		return
	}

	comment, err := a.engagement.Comment(c.Request.Context(), userID, recipeID, req.Text)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCommentView(*comment))
}

// ListRecipeComments 返回菜谱下的评论
func (a *API) ListRecipeComments(c *gin.Context) {
	recipeID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	comments, err := a.engagement.ListComments(c.Request.Context(), recipeID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCommentViews(comments))
}
