package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/locale"
	"github.com/recipeshare/internal/service"
)

var (
	msgInvalidID         = locale.Text{Zh: "无效的资源 ID", En: "Invalid resource id"}
	msgInternal          = locale.Text{Zh: "服务器内部错误", En: "Internal server error"}
	msgNotLoggedIn       = locale.Text{Zh: "用户未登录", En: "User not logged in"}
	msgLoginRequired     = locale.Text{Zh: "用户名和密码不能为空", En: "Username and password are required"}
	msgSignupRequired    = locale.Text{Zh: "用户名、邮箱和密码不能为空", En: "Username, email and password are required"}
	msgSessionSaveFailed = locale.Text{Zh: "会话保存失败", En: "Failed to save session"}
	msgBadPayload        = locale.Text{Zh: "请求数据格式错误", En: "Malformed request body"}
	msgIncompleteRecipe  = locale.Text{Zh: "菜谱数据不完整", En: "Incomplete recipe data provided"}
	msgNoNewRecipes      = locale.Text{Zh: "最近没有新菜谱", En: "No new recipes found"}
	msgBadRating         = locale.Text{Zh: "评分数据格式错误", En: "Malformed rating data"}
	msgBadComment        = locale.Text{Zh: "评论数据格式错误", En: "Malformed comment data"}
	msgFavorited         = locale.Text{Zh: "收藏成功", En: "Recipe favorited successfully"}
	msgRated             = locale.Text{Zh: "评分成功", En: "Rating added successfully"}
	msgUnreadableImage   = locale.Text{Zh: "无法读取上传的图片", En: "Unable to read the uploaded image"}
	msgBadForm           = locale.Text{Zh: "表单数据格式错误", En: "Malformed form data"}
	msgFileNotFound      = locale.Text{Zh: "文件不存在", En: "File not found"}
)

// serviceErrorMessages 将具体的服务错误映射为面向用户的提示
var serviceErrorMessages = map[error]locale.Text{
	service.ErrMissingField:       {Zh: "缺少必填字段", En: "Required field is missing"},
	service.ErrInvalidRating:      {Zh: "评分必须在 0 到 5 之间", En: "Rating must be between 0 and 5"},
	service.ErrEmptyText:          {Zh: "评论内容不能为空", En: "Comment text is required"},
	service.ErrInvalidImage:       {Zh: "只允许上传图片文件", En: "Only image files may be uploaded"},
	service.ErrInvalidMealType:    {Zh: "餐点类型必须是 breakfast、lunch 或 dinner", En: "Meal type must be breakfast, lunch or dinner"},
	service.ErrUserNotFound:       {Zh: "用户不存在", En: "User not found"},
	service.ErrRecipeNotFound:     {Zh: "菜谱不存在", En: "Recipe not found"},
	service.ErrProfileNotFound:    {Zh: "资料不存在", En: "Profile not found"},
	service.ErrJournalNotFound:    {Zh: "日志不存在", En: "Journal entry not found"},
	service.ErrInvalidCredentials: {Zh: "用户名或密码错误", En: "Invalid username or password"},
	service.ErrNotLoggedIn:        {Zh: "用户未登录", En: "User not logged in"},
	service.ErrDuplicateIdentity:  {Zh: "用户名或邮箱已被占用", En: "Username or email is already taken"},
	service.ErrAlreadyFavorited:   {Zh: "已经收藏过该菜谱", En: "Recipe already favorited by the user"},
	service.ErrNotFavorited:       {Zh: "尚未收藏该菜谱", En: "Recipe is not favorited by the user"},
}

// requestLanguage 根据 Accept-Language 决定响应语言
func requestLanguage(c *gin.Context) string {
	if lang := locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language")); lang != "" {
		return lang
	}
	return locale.DefaultLanguage
}

func localize(c *gin.Context, text locale.Text) string {
	return text.In(requestLanguage(c))
}
