package handler

import (
	"time"

	"github.com/recipeshare/internal/db"
)

// 以下视图类型决定了每个实体对外暴露的字段，序列化不会沿关联继续展开。

type userView struct {
	ID        uint         `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	Avatar    string       `json:"avatar"`
	Profile   *profileView `json:"profile,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

type profileView struct {
	ID     uint    `json:"id"`
	UserID uint    `json:"user_id"`
	Avatar *string `json:"avatar"`
}

type authorView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type ingredientView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ratingView struct {
	ID        uint      `json:"id"`
	Rating    float64   `json:"rating"`
	RecipeID  uint      `json:"recipe_id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type commentView struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	RecipeID  uint      `json:"recipe_id"`
	UserID    *uint     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type favoriteView struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	RecipeID  uint      `json:"recipe_id"`
	ProfileID *uint     `json:"profile_id"`
	Timestamp time.Time `json:"timestamp"`
}

type recipeListView struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	MealType      string    `json:"meal_type"`
	UserID        uint      `json:"user_id"`
	Ingredients   []string  `json:"ingredients"`
	AverageRating *float64  `json:"average_rating"`
	CreatedAt     time.Time `json:"created_at"`
}

type recipeDetailView struct {
	recipeListView
	Instructions     string           `json:"instructions"`
	InstructionsHTML string           `json:"instructions_html"`
	Author           *authorView      `json:"author"`
	IngredientItems  []ingredientView `json:"ingredient_items"`
	Ratings          []ratingView     `json:"ratings"`
	Comments         []commentView    `json:"comments"`
	RatingCount      int64            `json:"rating_count"`
	FavoriteCount    int              `json:"favorite_count"`
	IsFavorited      *bool            `json:"is_favorited,omitempty"`
}

// favoriteRecipeView 收藏列表中的菜谱，附带评分与评论
type favoriteRecipeView struct {
	recipeListView
	Ratings  []ratingView  `json:"ratings"`
	Comments []commentView `json:"comments"`
}

type journalEntryView struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html"`
	ImageURL    string    `json:"image_url,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	UserID      uint      `json:"user_id"`
}

func newUserView(user *db.User) userView {
	view := userView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.DisplayAvatar(),
		CreatedAt: user.CreatedAt,
	}
	if user.Profile != nil {
		profile := newProfileView(user.Profile)
		view.Profile = &profile
	}
	return view
}

func newUserViews(users []db.User) []userView {
	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, newUserView(&users[i]))
	}
	return views
}

func newProfileView(profile *db.Profile) profileView {
	return profileView{ID: profile.ID, UserID: profile.UserID, Avatar: profile.Avatar}
}

func newIngredientViews(ingredients []db.Ingredient) []ingredientView {
	views := make([]ingredientView, 0, len(ingredients))
	for _, ingredient := range ingredients {
		views = append(views, ingredientView{ID: ingredient.ID, Name: ingredient.Name})
	}
	return views
}

func newRatingView(rating db.RecipeRating) ratingView {
	return ratingView{
		ID:        rating.ID,
		Rating:    rating.Rating,
		RecipeID:  rating.RecipeID,
		UserID:    rating.UserID,
		CreatedAt: rating.CreatedAt,
	}
}

func newRatingViews(ratings []db.RecipeRating) []ratingView {
	views := make([]ratingView, 0, len(ratings))
	for _, rating := range ratings {
		views = append(views, newRatingView(rating))
	}
	return views
}

func newCommentView(comment db.Comment) commentView {
	return commentView{
		ID:        comment.ID,
		Text:      comment.Text,
		RecipeID:  comment.RecipeID,
		UserID:    comment.UserID,
		CreatedAt: comment.CreatedAt,
	}
}

func newCommentViews(comments []db.Comment) []commentView {
	views := make([]commentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, newCommentView(comment))
	}
	return views
}

func newFavoriteView(favorite *db.FavoriteRecipe) favoriteView {
	return favoriteView{
		ID:        favorite.ID,
		UserID:    favorite.UserID,
		RecipeID:  favorite.RecipeID,
		ProfileID: favorite.ProfileID,
		Timestamp: favorite.Timestamp,
	}
}

func newRecipeListView(recipe *db.Recipe) recipeListView {
	view := recipeListView{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Description: recipe.Description,
		ImageURL:    recipe.ImageURL,
		MealType:    string(recipe.MealType),
		UserID:      recipe.UserID,
		Ingredients: recipe.IngredientNames(),
		CreatedAt:   recipe.CreatedAt,
	}
	if avg, ok := recipe.AverageRating(); ok {
		view.AverageRating = &avg
	}
	return view
}

func newRecipeListViews(recipes []db.Recipe) []recipeListView {
	views := make([]recipeListView, 0, len(recipes))
	for i := range recipes {
		views = append(views, newRecipeListView(&recipes[i]))
	}
	return views
}

func newRecipeDetailView(recipe *db.Recipe) recipeDetailView {
	view := recipeDetailView{
		recipeListView:   newRecipeListView(recipe),
		Instructions:     recipe.Instructions,
		InstructionsHTML: renderMarkdown(recipe.Instructions),
		IngredientItems:  newIngredientViews(recipe.Ingredients),
		Ratings:          newRatingViews(recipe.Ratings),
		Comments:         newCommentViews(recipe.Comments),
		RatingCount:      int64(len(recipe.Ratings)),
		FavoriteCount:    len(recipe.Favorites),
	}
	if recipe.User != nil {
		view.Author = &authorView{
			ID:       recipe.User.ID,
			Username: recipe.User.Username,
			Avatar:   recipe.User.DisplayAvatar(),
		}
	}
	return view
}

func newFavoriteRecipeViews(recipes []db.Recipe) []favoriteRecipeView {
	views := make([]favoriteRecipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, favoriteRecipeView{
			recipeListView: newRecipeListView(&recipes[i]),
			Ratings:        newRatingViews(recipes[i].Ratings),
			Comments:       newCommentViews(recipes[i].Comments),
		})
	}
	return views
}

func newJournalEntryView(entry *db.JournalEntry) journalEntryView {
	view := journalEntryView{
		ID:          entry.ID,
		Title:       entry.Title,
		Content:     entry.Content,
		ContentHTML: renderMarkdown(entry.Content),
		Timestamp:   entry.Timestamp,
		UserID:      entry.UserID,
	}
	if entry.ImageFilename != "" {
		view.ImageURL = journalImageURL(entry.ImageFilename)
	}
	return view
}

func newJournalEntryViews(entries []db.JournalEntry) []journalEntryView {
	views := make([]journalEntryView, 0, len(entries))
	for i := range entries {
		views = append(views, newJournalEntryView(&entries[i]))
	}
	return views
}
