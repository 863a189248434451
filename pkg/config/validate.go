// pkg/config/validate.go

package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/CodeMonkeyCybersecurity/quell/pkg/quell_err"
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// unitNameRe matches a systemd unit name (optionally with .service). Leading
// dashes are refused so a name can never be read as a systemctl option.
var unitNameRe = regexp.MustCompile(`^[A-Za-z0-9:_.@][A-Za-z0-9:_.@-]{0,255}$`)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("unitname", func(fl validator.FieldLevel) bool {
			return ValidUnitName(fl.Field().String())
		}); err != nil {
			panic(err)
		}
	})
	return validate
}

// ValidUnitName reports whether name is safe to pass to systemctl.
func ValidUnitName(name string) bool {
	return unitNameRe.MatchString(name)
}

// Validate checks cfg and returns a validation error naming every bad field.
func Validate(cfg *Config) error {
	if err := instance().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !cerr.As(err, &verrs) {
			return quell_err.NewInternalError("configuration validation failed", err)
		}
		problems := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
		return quell_err.NewValidationError("invalid configuration: "+strings.Join(problems, "; "),
			quell_err.WrapValidationError(err),
			"Service names may contain letters, digits and : _ . @ - (max 256 characters)",
			"sudo must be auto, always or never; output must be text, json or yaml")
	}
	return nil
}

// ValidateNames checks ad-hoc names such as --service values.
func ValidateNames(names []string) error {
	for _, n := range names {
		if !ValidUnitName(n) {
			return quell_err.NewValidationError(fmt.Sprintf("invalid service name %q", n), nil,
				"Service names may contain letters, digits and : _ . @ - (max 256 characters)")
		}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "unitname":
		return fmt.Sprintf("%s: invalid service name %q", fe.Namespace(), fe.Value())
	case "oneof":
		return fmt.Sprintf("%s: %q is not one of [%s]", fe.Namespace(), fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag())
	}
}
