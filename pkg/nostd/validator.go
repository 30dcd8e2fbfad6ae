package nostd

import (
	"errors"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps validator/v10 so echo's c.Validate works with the
// `validate` struct tags, with human readable english messages.
type CustomValidator struct {
	Validator *validator.Validate
	trans     ut.Translator
}

// TransInit registers the english translations.
func (cv *CustomValidator) TransInit() error {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)

	trans, ok := uni.GetTranslator("en")
	if !ok {
		return errors.New("translator not found: en")
	}
	cv.trans = trans

	return enTranslations.RegisterDefaultTranslations(cv.Validator, trans)
}

// Validate implements echo.Validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.Validator.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && cv.trans != nil && len(verrs) > 0 {
			return echo.NewHTTPError(http.StatusBadRequest, verrs[0].Translate(cv.trans))
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
