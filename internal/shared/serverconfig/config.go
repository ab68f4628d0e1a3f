package serverconfig

import (
	"errors"
	"fmt"
	"os"

	"shamtool/internal/shared/config"
)

var Conf Config

// Load reads the process configuration. cfgName may be empty.
func Load(cfgName string) {
	config.Load(cfgName, &Conf)
	// Environment wins; otherwise publish the configured secret so security.Award can find it.
	if os.Getenv("JWT_SECRET") == "" && Conf.JWT.Secret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.JWT.Secret)
	}
	if err := Conf.Validate(); err != nil {
		panic(err)
	}
}

// Snapshot returns a copy of the current configuration taken under the reload lock.
func Snapshot() Config {
	var c Config
	config.Read(func() { c = Conf })
	return c
}

// Validate checks the keys the process cannot start without.
func (c Config) Validate() error {
	var errs []error
	required := map[string]string{
		"mysql.host":         c.MySQL.Host,
		"mysql.dbname":       c.MySQL.DBName,
		"mysql.user":         c.MySQL.User,
		"helper.secret_pass": c.Helper.SecretPass,
	}
	for key, v := range required {
		if v == "" {
			errs = append(errs, fmt.Errorf("missing required config %q", key))
		}
	}
	if c.HTTPServer.Port < 0 || c.HTTPServer.Port > 65535 {
		errs = append(errs, fmt.Errorf("httpserver.port out of range: %d", c.HTTPServer.Port))
	}
	return errors.Join(errs...)
}
