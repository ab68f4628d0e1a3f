package serverconfig

import "time"

type Config struct {
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Discord    DiscordConfig    `yaml:"discord" mapstructure:"discord"`
	Helper     HelperConfig     `yaml:"helper" mapstructure:"helper"`
	JWT        JWTConfig        `yaml:"jwt" mapstructure:"jwt"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	// The mapping layer runs on a single shared connection; these stay at 1 unless a
	// deployment explicitly wants more.
	MaxIdle int `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn int `yaml:"max_conn" mapstructure:"max_conn"`
	// SlowThreshold marks statements logged as slow.
	SlowThreshold time.Duration `yaml:"slow_threshold" mapstructure:"slow_threshold"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// AllowOrigins feeds the CORS middleware; empty allows any origin.
	AllowOrigins []string `yaml:"allow_origins" mapstructure:"allow_origins"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type DiscordConfig struct {
	ClientID     string   `yaml:"client_id" mapstructure:"client_id"`
	ClientSecret string   `yaml:"client_secret" mapstructure:"client_secret"`
	RedirectURI  string   `yaml:"redirect_uri" mapstructure:"redirect_uri"`
	Scopes       []string `yaml:"scopes" mapstructure:"scopes"`
	// APIBaseURL is overridden in tests; defaults to https://discord.com/api/.
	APIBaseURL string        `yaml:"api_base_url" mapstructure:"api_base_url"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type HelperConfig struct {
	// SecretPass guards the /helper routes until real roles exist.
	SecretPass string `yaml:"secret_pass" mapstructure:"secret_pass"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret" mapstructure:"secret"`
	TTL    time.Duration `yaml:"ttl" mapstructure:"ttl"`
}
