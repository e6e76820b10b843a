package db

import (
	"errors"
	"strings"
)

// MealType 表示菜谱所属的餐次，统一以小写形式存储
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// ErrInvalidMealType 在餐次不属于 breakfast/lunch/dinner 时返回
var ErrInvalidMealType = errors.New("invalid meal type")

// MealTypes 返回全部合法餐次
func MealTypes() []MealType {
	return []MealType{MealBreakfast, MealLunch, MealDinner}
}

// ParseMealType 忽略大小写与首尾空白，将输入规范化为小写餐次
func ParseMealType(raw string) (MealType, error) {
	candidate := MealType(strings.ToLower(strings.TrimSpace(raw)))
	for _, mt := range MealTypes() {
		if candidate == mt {
			return mt, nil
		}
	}
	return "", ErrInvalidMealType
}
