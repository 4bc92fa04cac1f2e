package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/ru"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	ru_translations "github.com/go-playground/validator/v10/translations/ru"
)

// trans is the singleton Russian translator for validation errors.
var (
	trans     ut.Translator
	setupOnce sync.Once
)

// Field-level messages shown next to form inputs.
const (
	msgConsent = "Необходимо дать согласие на обработку данных"
	msgEmail   = "Неверный формат email"
)

// Setup registers the validator with Russian translations on Gin's binding engine.
// Safe to call more than once.
func Setup() {
	setupOnce.Do(setup)
}

func setup() {
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	if !ok {
		return
	}

	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// "accepted" requires a checkbox to be ticked.
	_ = v.RegisterValidation("accepted", func(fl govalidator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.Bool && fl.Field().Bool()
	})

	ruLocale := ru.New()
	uni := ut.New(ruLocale, ruLocale)
	trans, _ = uni.GetTranslator("ru")
	_ = ru_translations.RegisterDefaultTranslations(v, trans)

	registerMessage(v, "accepted", msgConsent)
	registerMessage(v, "email", msgEmail)
}

func registerMessage(v *govalidator.Validate, tag, msg string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, msg, true)
		},
		func(t ut.Translator, fe govalidator.FieldError) string {
			s, _ := t.T(tag)
			return s
		},
	)
}

// TranslateErrors takes a binding/validation error and returns a map of
// field name → human-readable error message. If the error is not a
// validation error, it returns a single-key map with "detail".
func TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			if trans != nil {
				fields[fe.Field()] = fe.Translate(trans)
			} else {
				fields[fe.Field()] = fe.Error()
			}
		}
		return fields
	}

	// Not a validation error (e.g., JSON syntax error).
	fields["detail"] = err.Error()
	return fields
}

// Bind binds and validates the request body into dst.
// Returns nil on success or a translated field error map on failure.
func Bind(c *gin.Context, dst interface{}) map[string]string {
	if err := c.ShouldBindJSON(dst); err != nil {
		return TranslateErrors(err)
	}
	return nil
}

// Struct validates an already populated record against its binding tags.
// Returns nil when the record is accepted.
func Struct(v interface{}) map[string]string {
	if err := binding.Validator.ValidateStruct(v); err != nil {
		return TranslateErrors(err)
	}
	return nil
}
