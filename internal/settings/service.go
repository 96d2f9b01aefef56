package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// Service reads and writes settings, checking documented keys against their allowed values.
type Service struct {
	repo     Repository
	validate *validator.Validate
	trans    ut.Translator
}

// NewService creates a new Service.
func NewService(repo Repository) (*Service, error) {
	validate := validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return &Service{repo: repo, validate: validate, trans: trans}, nil
}

// Load returns the defaults overlaid with every valid stored value.
// Stored values that no longer validate are ignored.
func (s *Service) Load(ctx context.Context) (AppSettings, error) {
	stored, err := s.repo.All(ctx)
	if err != nil {
		return AppSettings{}, fmt.Errorf("load settings: %w", err)
	}
	current := Defaults()
	for _, st := range stored {
		if !IsDocumented(st.Name) {
			continue
		}
		next, err := s.apply(current, st.Name, st.Value)
		if err != nil {
			slog.Default().Warn("ignoring stored setting", "name", st.Name, "error", err)
			continue
		}
		current = next
	}
	return current, nil
}

// Get returns the JSON value of key. Documented keys report the value Load
// would use, so a missing or invalid stored value yields the default.
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	if IsDocumented(key) {
		current, err := s.Load(ctx)
		if err != nil {
			return "", err
		}
		return fieldJSON(current, key)
	}
	st, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return st.Value, nil
}

// Set stores raw, which must be JSON, under key. Documented keys must also hold an allowed value.
func (s *Service) Set(ctx context.Context, key, raw string) error {
	if key == "" {
		return errors.New("setting name is required")
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(raw)); err != nil {
		return fmt.Errorf("value of %s is not valid JSON: %w", key, err)
	}
	if IsDocumented(key) {
		if _, err := s.apply(Defaults(), key, compact.String()); err != nil {
			return err
		}
	}
	return s.repo.Set(ctx, key, compact.String())
}

// apply decodes raw into the field named key of base and validates the result.
func (s *Service) apply(base AppSettings, key, raw string) (AppSettings, error) {
	doc := fmt.Sprintf("{%q:%s}", key, raw)
	dec := json.NewDecoder(strings.NewReader(doc))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&base); err != nil {
		return AppSettings{}, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := s.validate.Struct(base); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return AppSettings{}, fmt.Errorf("validate settings: %w", err)
		}
		msgs := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			msgs = append(msgs, fe.Translate(s.trans))
		}
		return AppSettings{}, fmt.Errorf("invalid value for %s: %s", key, strings.Join(msgs, "; "))
	}
	return base, nil
}

func fieldJSON(current AppSettings, key string) (string, error) {
	b, err := json.Marshal(current)
	if err != nil {
		return "", fmt.Errorf("json.Marshal(settings) > %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return "", fmt.Errorf("json.Unmarshal(settings) > %w", err)
	}
	return string(fields[key]), nil
}
