package handler

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/recipeshare/internal/db"
)

// RegisterValidators 在 gin 的校验引擎上注册自定义规则，重复调用是安全的
func RegisterValidators() error {
	engine, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return engine.RegisterValidation("mealtype", validateMealType)
}

func validateMealType(fl validator.FieldLevel) bool {
	_, err := db.ParseMealType(fl.Field().String())
	return err == nil
}

// onlyMealTypeRejected 判断绑定失败是否仅由 mealtype 规则引起
func onlyMealTypeRejected(err error) bool {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return false
	}
	for _, fe := range fieldErrs {
		if fe.Tag() != "mealtype" {
			return false
		}
	}
	return true
}
