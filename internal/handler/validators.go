package handler

import (
	"jewelry_store/internal/model"
	"jewelry_store/internal/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request models.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("currency", validCurrency); err != nil {
		return err
	}
	return v.RegisterValidation("ymd", validDay)
}

func validCurrency(fl validator.FieldLevel) bool {
	c, ok := fl.Field().Interface().(model.Currency)
	if !ok {
		return false
	}
	return c.Valid()
}

func validDay(fl validator.FieldLevel) bool {
	_, err := utils.ParseDay(fl.Field().String())
	return err == nil
}
