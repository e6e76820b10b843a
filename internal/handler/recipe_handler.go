package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/locale"
	"github.com/recipeshare/internal/service"
)

type recipeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description" binding:"required"`
	Instructions string   `json:"instructions"`
	ImageURL     string   `json:"image_url"`
	MealType     string   `json:"meal_type" binding:"required,mealtype"`
	UserID       uint     `json:"user_id" binding:"required"`
	Ingredients  []string `json:"ingredients"`
}

type recipePatchRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Instructions *string   `json:"instructions"`
	ImageURL     *string   `json:"image_url"`
	MealType     *string   `json:"meal_type" binding:"omitempty,mealtype"`
	Ingredients  *[]string `json:"ingredients"`
}

// bindRecipeJSON 与 bindJSON 相同，但非法餐点类型会返回对应的错误信息
func bindRecipeJSON(c *gin.Context, dst interface{}, message locale.Text) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if onlyMealTypeRejected(err) {
			handleServiceError(c, service.ErrInvalidMealType)
			return false
		}
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// ListRecipes 返回全部菜谱
func (a *API) ListRecipes(c *gin.Context) {
	recipes, err := a.recipes.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecipeListViews(recipes))
}

// ListNewRecipes 返回最近创建的菜谱，没有时返回 404
func (a *API) ListNewRecipes(c *gin.Context) {
	recipes, err := a.recipes.ListRecent(c.Request.Context(), a.recentWindow)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if len(recipes) == 0 {
		respondError(c, http.StatusNotFound, msgNoNewRecipes)
		return
	}
	c.JSON(http.StatusOK, newRecipeListViews(recipes))
}

// CreateRecipe 创建菜谱，配料按名称复用
func (a *API) CreateRecipe(c *gin.Context) {
	var req recipeRequest
	if !bindRecipeJSON(c, &req, msgIncompleteRecipe) {
		return
	}

	recipe, err := a.recipes.Create(c.Request.Context(), service.RecipeInput{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		MealType:     req.MealType,
		UserID:       req.UserID,
		Ingredients:  req.Ingredients,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRecipeDetailView(recipe))
}

// GetRecipe 返回菜谱详情
func (a *API) GetRecipe(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	recipe, err := a.recipes.Get(ctx, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	view := newRecipeDetailView(recipe)

	summary, err := a.engagement.RatingSummary(ctx, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	view.RatingCount = summary.Count
	view.AverageRating = nil
	if summary.Count > 0 {
		average := summary.Average
		view.AverageRating = &average
	}

	// 登录用户额外返回是否已收藏
	if userID, ok := service.CurrentUserID(ctx); ok {
		favorited, err := a.engagement.IsFavorited(ctx, userID, id)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		view.IsFavorited = &favorited
	}
	c.JSON(http.StatusOK, view)
}

// UpdateRecipe 部分更新菜谱
func (a *API) UpdateRecipe(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req recipePatchRequest
	if !bindRecipeJSON(c, &req, msgBadPayload) {
		return
	}

	recipe, err := a.recipes.Update(c.Request.Context(), id, service.RecipePatch{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
		MealType:     req.MealType,
		Ingredients:  req.Ingredients,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRecipeDetailView(recipe))
}

// DeleteRecipe 删除菜谱及其评论、评分、收藏
func (a *API) DeleteRecipe(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := a.recipes.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListIngredients 返回全部配料
func (a *API) ListIngredients(c *gin.Context) {
	ingredients, err := a.recipes.ListIngredients(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newIngredientViews(ingredients))
}
