package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("dir", isDirectoryPath); err != nil {
		return nil, nil, fmt.Errorf("failed to register dir validation: %w", err)
	}
	if err := validate.RegisterTranslation("dir", trans, func(ut ut.Translator) error {
		return ut.Add("dir", "{0} must be a directory or a path that can be created as one", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("dir", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register dir translation: %w", err)
	}

	return validate, trans, nil
}

// isDirectoryPath accepts missing paths since directories are created lazily,
// but rejects paths that already exist as something other than a directory.
func isDirectoryPath(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	if err != nil {
		return false
	}
	return info.IsDir()
}
