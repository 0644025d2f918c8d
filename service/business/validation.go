package business

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/antinvestor/bkash-api/service/models"
	"github.com/antinvestor/bkash-api/service/utility"
	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
		if err := v.RegisterValidation("money2", validateMoney2); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("finite", validateFinite); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

// validateMoney2 accepts positive decimal strings with at most two fractional digits.
func validateMoney2(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	amount, err := utility.ParseAmount(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return false
	}
	return amount.IsPositive() && utility.HasAtMostTwoDecimals(amount)
}

func validateFinite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	default:
		return true
	}
}

// ValidateStruct checks input against its struct tags and reports every offending field.
func ValidateStruct(input any) error {
	err := getValidator().Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return &models.ValidationError{Field: "request", Message: err.Error(), Fields: map[string]string{"request": err.Error()}}
	}

	verr := &models.ValidationError{Fields: make(map[string]string, len(fieldErrors))}
	for i, fe := range fieldErrors {
		msg := fieldMessage(fe)
		verr.Fields[fe.Field()] = msg
		if i == 0 {
			verr.Field = fe.Field()
			verr.Message = msg
		}
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "money2":
		return "must be a positive amount with at most two decimal places"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "url":
		return "must be a valid URL"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "finite":
		return "must be a finite number"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
