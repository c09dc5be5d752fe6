package respond

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type validatorSvc struct {
	validator  *validator.Validate
	translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *validatorSvc
)

func validatorInstance() *validatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vSvc = &validatorSvc{validator: v, translator: trans}
	})
	return vSvc
}

// Check проверяет тело запроса по validate-тегам и отдает 400 со списком полей
func Check(body any) error {
	svc := validatorInstance()
	err := svc.validator.Struct(body)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewError(http.StatusBadRequest, "validation failed", err)
	}

	details := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, &huma.ErrorDetail{
			Location: fieldPath(fe.Namespace()),
			Message:  fe.Translate(svc.translator),
		})
	}
	return NewError(http.StatusBadRequest, "validation failed", details...)
}

// fieldPath отрезает имя корневой структуры: "LoginRequest.email" → "email"
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
