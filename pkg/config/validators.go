package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentTest        = "test"
	EnvironmentProduction  = "production"
)

var allowedAlgorithms = map[string]struct{}{
	"HS256": {},
	"HS384": {},
	"HS512": {},
}

func (c *Config) validate() error {
	if missing := c.missingRequired(); len(missing) > 0 {
		return errors.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	switch c.Environment {
	case EnvironmentDevelopment, EnvironmentTest, EnvironmentProduction:
	default:
		return errors.Errorf("invalid ENVIRONMENT %q", c.Environment)
	}

	if c.Environment == EnvironmentProduction && c.JWTSecret == DefaultJWTSecret {
		return errors.New("JWT_SECRET must be changed from its default in production")
	}

	if _, ok := allowedAlgorithms[c.JWTAlgorithm]; !ok {
		return errors.Errorf("unsupported JWT_ALGORITHM %q: expected HS256, HS384 or HS512", c.JWTAlgorithm)
	}

	return nil
}

// missingRequired lists every empty field tagged required, naming both the
// environment variable and the YAML key.
func (c *Config) missingRequired() []string {
	var missing []string
	v := reflect.ValueOf(c).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("required") != "true" || !v.Field(i).IsZero() {
			continue
		}
		key := field.Tag.Get("koanf")
		missing = append(missing, fmt.Sprintf("%s (%s)", strings.ToUpper(key), key))
	}
	return missing
}
