package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"pressroom/internal/domain/pagination"
)

// ErrInvalidRequest — запрос не прошел проверку до отправки; это ошибка вызывающего
var ErrInvalidRequest = errors.New("invalid request")

var (
	vOnce sync.Once
	v     *validator.Validate
)

func validatorInstance() *validator.Validate {
	vOnce.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())

		// в сообщениях используем имена из json-тегов
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
	})
	return v
}

// validate проверяет структуру по validate-тегам
func validate(req any) error {
	if err := validatorInstance().Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// requireID отсекает пустые идентификаторы до построения пути
func requireID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidRequest, name)
	}
	return nil
}

// checkPage проверяет запрос страницы любого стиля
func checkPage(p pagination.Request) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

// Validate проверяет структуру так же, как ресурсы перед отправкой
func Validate(req any) error {
	return validate(req)
}
