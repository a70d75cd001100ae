package configs

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Simulation  SimulationConfig  `mapstructure:"simulation" validate:"required"`
	Reports     ReportsConfig     `mapstructure:"reports" validate:"required"`
	Live        LiveConfig        `mapstructure:"live" validate:"required"`
	Streams     StreamsConfig     `mapstructure:"streams"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
	ShutdownTimeout   int `mapstructure:"shutdown_timeout" validate:"min=1"`             // seconds
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"required"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// FileStorageConfig holds file storage configuration. Only export artifacts are written there.
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// SimulationConfig controls the synthetic event source.
type SimulationConfig struct {
	Enabled        bool  `mapstructure:"enabled"`
	TickIntervalMs int   `mapstructure:"tick_interval_ms" validate:"required,min=1000,max=5000"`
	Seed           int64 `mapstructure:"seed"`
	HistoryDays    int   `mapstructure:"history_days" validate:"min=0,max=366"`
	Employees      int   `mapstructure:"employees" validate:"required,min=1,max=1000"`
	EventsPerDay   int   `mapstructure:"events_per_day" validate:"min=0,max=50"` // per employee, for history
}

// ReportsConfig holds query defaults shared by every report.
type ReportsConfig struct {
	DefaultPageSize int    `mapstructure:"default_page_size" validate:"required,min=1"`
	MaxPageSize     int    `mapstructure:"max_page_size" validate:"required,min=1,gtefield=DefaultPageSize"`
	Timezone        string `mapstructure:"timezone" validate:"required"`
}

// LiveConfig bounds the in-memory live tallies.
type LiveConfig struct {
	RetentionDays int `mapstructure:"retention_days" validate:"required,min=1,max=366"`
}

// StreamsConfig sizes the in-process queue between ingestion and the reports.
type StreamsConfig struct {
	Partitions int `mapstructure:"partitions" validate:"min=1,max=256"`
	Buffer     int `mapstructure:"buffer" validate:"min=1"`
}
