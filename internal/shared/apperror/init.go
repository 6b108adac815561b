package apperror

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init makes validator report json field names and registers custom rules
// supplied by feature packages.
func Init(rules ...ValidationRule) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(jsonTagName)
	for _, rule := range rules {
		_ = v.RegisterValidation(rule.Tag, rule.Fn)
	}
}

// NewValidator is a standalone validator reporting json names, for
// payloads that never pass through gin binding (e.g. Kafka events).
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonTagName)
	return v
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

type ValidationRule struct {
	Tag string
	Fn  validator.Func
}
