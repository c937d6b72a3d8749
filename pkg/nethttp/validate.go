package nethttp

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	en2 "gopkg.in/go-playground/validator.v9/translations/en"

	"gopkg.in/go-playground/validator.v9"

	lmerrors "github.com/niklasmelin/license-manager/pkg/errors"
)

// productFeaturePattern matches the "product.feature" composite key used by
// reconcile reports and booking requests: two dot-separated identifier
// segments, each letters/digits/underscore/dash.
var productFeaturePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+$`)

// ValidateStruct validates s against its `validate:"..."` tags, translating
// failures into a pkg/errors.ValidationError keyed by JSON field name.
func ValidateStruct(s any) error {
	v, trans := newValidator()

	k := reflect.ValueOf(s).Kind()
	if k == reflect.Ptr {
		k = reflect.ValueOf(s).Elem().Kind()
	}

	if k != reflect.Struct {
		return nil
	}

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return lmerrors.ValidationError{Title: "Validation Failed", Message: err.Error()}
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fe.Translate(trans)
	}

	return lmerrors.ValidationError{
		Title:   "Validation Failed",
		Message: "The request body contains one or more invalid fields.",
		Fields:  fields,
	}
}

func newValidator() (*validator.Validate, ut.Translator) {
	locale := en.New()
	uni := ut.New(locale, locale)

	trans, _ := uni.GetTranslator("en")

	v := validator.New()

	if err := en2.RegisterDefaultTranslations(v, trans); err != nil {
		panic(err)
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	_ = v.RegisterValidation("product_feature", validateProductFeature)

	_ = v.RegisterTranslation("product_feature", trans, func(ut ut.Translator) error {
		return ut.Add("product_feature", "{0} must be a \"product.feature\" key", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("product_feature", fe.Field())
		return t
	})

	return v, trans
}

func validateProductFeature(fl validator.FieldLevel) bool {
	return productFeaturePattern.MatchString(fl.Field().String())
}
