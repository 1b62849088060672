package config

// HTTPServer struct for HTTP Transport configuration
type HTTPServer struct {
	Port int `yaml:"port"`
}

// Transport is a configuration for the public transport: HTTP, gRPC or anything
type Transport struct {
	HTTP HTTPServer `yaml:"http"`
}

type GoSqlDb struct {
	Debug bool   `yaml:"debug"`
	DSN   string `yaml:"dsn"` // Data Source Name
}

type DatabaseResource struct {
	Disable bool   `yaml:"disable"`
	Driver  string `yaml:"driver"` // postgres only for now

	Postgres GoSqlDb `yaml:"postgres"`
}

// DatabaseResources redefine config
type DatabaseResources map[string]DatabaseResource

type JWT struct {
	Secret string `yaml:"secret"`

	// Zero means built-in defaults: 30 minutes access, 7 days refresh.
	AccessTTLMinutes int `yaml:"accessTTLMinutes"`
	RefreshTTLDays   int `yaml:"refreshTTLDays"`
}

type OpenAI struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL"`
	Model   string `yaml:"model"`
}

// Config contains application config
type Config struct {
	DebugError bool `yaml:"debugError"`

	Transport Transport `yaml:"transport"`

	DatabaseResources DatabaseResources `yaml:"databaseResources"`

	UserRepo struct {
		DBLabel string `yaml:"dbLabel"`
	} `yaml:"userRepo"`

	AppRepo struct {
		DBLabel string `yaml:"dbLabel"`
	} `yaml:"appRepo"`

	DeployRepo struct {
		DBLabel string `yaml:"dbLabel"`
	} `yaml:"deployRepo"`

	JWT JWT `yaml:"jwt"`

	OpenAI OpenAI `yaml:"openai"`
}
