package config

// StorageDriver selects the bookmark backend.
type StorageDriver string

const (
	DriverSQLite StorageDriver = "sqlite"
	DriverRedis  StorageDriver = "redis"
	DriverMemory StorageDriver = "memory"
)

// Config is the top-level server configuration, corresponding to healthguide.yml.
type Config struct {
	Server   ServerConfig  `koanf:"server"`
	Storage  StorageConfig `koanf:"storage"`
	Log      LogConfig     `koanf:"log"`
	Search   SearchConfig  `koanf:"search"`
	Language string        `koanf:"language"`
}

type ServerConfig struct {
	Addr    string   `koanf:"addr"`
	Origins []string `koanf:"origins"`
}

type StorageConfig struct {
	Driver StorageDriver `koanf:"driver"`
	Path   string        `koanf:"path"`
	Redis  RedisConfig   `koanf:"redis"`
}

type RedisConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Prefix   string `koanf:"prefix"`
}

// LogConfig controls the logrus logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// SearchConfig holds the search coverage, "deep" or "basic".
type SearchConfig struct {
	Coverage string `koanf:"coverage"`
}
