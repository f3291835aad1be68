package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "hoopshot.cfg.json"

// LaunchConfig holds the throw: initial position, speed and angles.
type LaunchConfig struct {
	X         float64 `json:"x" mapstructure:"x"`
	Y         float64 `json:"y" mapstructure:"y"`
	Z         float64 `json:"z" mapstructure:"z"`
	Speed     float64 `json:"speed" mapstructure:"speed"`
	Teta      float64 `json:"teta" mapstructure:"teta"`
	Phi       float64 `json:"phi" mapstructure:"phi"`
	AngleUnit string  `json:"angleUnit" mapstructure:"angleUnit"`
}

// TargetConfig holds the basket position and capture radius.
type TargetConfig struct {
	X             float64 `json:"x" mapstructure:"x"`
	Y             float64 `json:"y" mapstructure:"y"`
	Z             float64 `json:"z" mapstructure:"z"`
	CaptureRadius float64 `json:"captureRadius" mapstructure:"captureRadius"`
}

// SimulationConfig holds the time window and the gravity constant.
type SimulationConfig struct {
	Seconds float64 `json:"seconds" mapstructure:"seconds"`
	Steps   int     `json:"steps" mapstructure:"steps"`
	Gravity float64 `json:"gravity" mapstructure:"gravity"`
}

// GridConfig holds the character grid size and the area it covers.
type GridConfig struct {
	Rows       int     `json:"rows" mapstructure:"rows"`
	Cols       int     `json:"cols" mapstructure:"cols"`
	RowsMeters float64 `json:"rowsMeters" mapstructure:"rowsMeters"`
	ColsMeters float64 `json:"colsMeters" mapstructure:"colsMeters"`
}

// SVGConfig holds the SVG output settings.
type SVGConfig struct {
	Dir        string  `json:"dir" mapstructure:"dir"`
	Filename   string  `json:"filename" mapstructure:"filename"`
	Width      float64 `json:"width" mapstructure:"width"`
	Height     float64 `json:"height" mapstructure:"height"`
	Background string  `json:"background" mapstructure:"background"`
}

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds SQLite storage backend settings. An empty Path keeps
// the database in memory until it is dumped to DumpPath on close.
type SQLiteConfig struct {
	Path     string `json:"path" mapstructure:"path"`
	DumpPath string `json:"dumpPath" mapstructure:"dumpPath"`
}

// PostgresConfig holds Postgres connection settings.
type PostgresConfig struct {
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
	SSLMode  string `json:"sslMode" mapstructure:"sslMode"`
}

// WebSocketConfig holds the streaming backend settings.
type WebSocketConfig struct {
	URL         string        `json:"url" mapstructure:"url"`
	Secret      string        `json:"secret" mapstructure:"secret"`
	DialTimeout time.Duration `json:"dialTimeout" mapstructure:"dialTimeout"`
	AckTimeout  time.Duration `json:"ackTimeout" mapstructure:"ackTimeout"`
}

// StorageConfig selects and configures the run store.
type StorageConfig struct {
	Type      string          `json:"type" mapstructure:"type"`
	Memory    MemoryConfig    `json:"memory" mapstructure:"memory"`
	SQLite    SQLiteConfig    `json:"sqlite" mapstructure:"sqlite"`
	Postgres  PostgresConfig  `json:"postgres" mapstructure:"postgres"`
	WebSocket WebSocketConfig `json:"websocket" mapstructure:"websocket"`
}

// InfluxConfig holds InfluxDB settings.
type InfluxConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	Host      string `json:"host" mapstructure:"host"`
	Port      string `json:"port" mapstructure:"port"`
	Protocol  string `json:"protocol" mapstructure:"protocol"`
	Token     string `json:"token" mapstructure:"token"`
	Org       string `json:"org" mapstructure:"org"`
	Bucket    string `json:"bucket" mapstructure:"bucket"`
	BackupDir string `json:"backupDir" mapstructure:"backupDir"`
}

// OTelConfig holds OpenTelemetry settings.
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

// GraylogConfig holds the GELF log sink settings.
type GraylogConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Address string `json:"address" mapstructure:"address"`
}

// APIConfig holds the upload server settings.
type APIConfig struct {
	Enabled   bool   `json:"enabled" mapstructure:"enabled"`
	ServerURL string `json:"serverUrl" mapstructure:"serverUrl"`
	APIKey    string `json:"apiKey" mapstructure:"apiKey"`
}

// VenueConfig describes where the throw happens.
type VenueConfig struct {
	Name      string  `json:"name" mapstructure:"name"`
	Latitude  float64 `json:"latitude" mapstructure:"latitude"`
	Longitude float64 `json:"longitude" mapstructure:"longitude"`
}

// ReportConfig holds console report options.
type ReportConfig struct {
	HeightProfile bool `json:"heightProfile" mapstructure:"heightProfile"`
	ProfileHeight int  `json:"profileHeight" mapstructure:"profileHeight"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "")

	viper.SetDefault("launch.x", 0.0)
	viper.SetDefault("launch.y", 1.5)
	viper.SetDefault("launch.z", 0.0)
	viper.SetDefault("launch.speed", 10.0)
	viper.SetDefault("launch.teta", 45.0)
	viper.SetDefault("launch.phi", 0.0)
	viper.SetDefault("launch.angleUnit", "radians")

	viper.SetDefault("target.x", 8.0)
	viper.SetDefault("target.y", 3.05)
	viper.SetDefault("target.z", 5.0)
	viper.SetDefault("target.captureRadius", 0.1)

	viper.SetDefault("simulation.seconds", 3.0)
	viper.SetDefault("simulation.steps", 60)
	viper.SetDefault("simulation.gravity", 9.807)

	viper.SetDefault("grid.rows", 50)
	viper.SetDefault("grid.cols", 80)
	viper.SetDefault("grid.rowsMeters", 10.0)
	viper.SetDefault("grid.colsMeters", 10.0)

	viper.SetDefault("svg.dir", "./")
	viper.SetDefault("svg.filename", "basketball_trajectory.svg")
	viper.SetDefault("svg.width", 500.0)
	viper.SetDefault("svg.height", 300.0)
	viper.SetDefault("svg.background", "black")

	viper.SetDefault("storage.type", "none")
	viper.SetDefault("storage.memory.outputDir", "./runs")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.path", "")
	viper.SetDefault("storage.sqlite.dumpPath", "./runs/hoopshot.db")
	viper.SetDefault("storage.postgres.host", "localhost")
	viper.SetDefault("storage.postgres.port", "5432")
	viper.SetDefault("storage.postgres.username", "postgres")
	viper.SetDefault("storage.postgres.password", "postgres")
	viper.SetDefault("storage.postgres.database", "hoopshot")
	viper.SetDefault("storage.postgres.sslMode", "disable")
	viper.SetDefault("storage.websocket.url", "ws://localhost:5000/api/v1/stream")
	viper.SetDefault("storage.websocket.secret", "")
	viper.SetDefault("storage.websocket.dialTimeout", "10s")
	viper.SetDefault("storage.websocket.ackTimeout", "5s")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "hoopshot")
	viper.SetDefault("influx.bucket", "throws")
	viper.SetDefault("influx.backupDir", "")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "hoopshot")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.serverUrl", "http://localhost:5000")
	viper.SetDefault("api.apiKey", "")

	viper.SetDefault("venue.name", "")
	viper.SetDefault("venue.latitude", 0.0)
	viper.SetDefault("venue.longitude", 0.0)

	viper.SetDefault("report.heightProfile", false)
	viper.SetDefault("report.profileHeight", 10)
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. The defaults stay
// in effect when an error is returned.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"log-level":  "logLevel",
	"angle-unit": "launch.angleUnit",
	"storage":    "storage.type",
	"svg-dir":    "svg.dir",
	"svg-file":   "svg.filename",
}

// RegisterFlags defines the command line flags that override config keys.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config-dir", ".", "directory containing "+FileName)
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("angle-unit", "radians", "unit of launch.teta (radians, degrees)")
	fs.String("storage", "none", "run store (none, memory, sqlite, postgres, websocket)")
	fs.String("svg-dir", "./", "directory of the SVG output")
	fs.String("svg-file", "basketball_trajectory.svg", "file name of the SVG output")
	fs.String("basket", "", "basket position as x,y[,z] in meters, overrides target.x/y/z")
}

// BindFlags binds the flags defined by RegisterFlags into viper. A flag only
// overrides the config file when it was set explicitly.
func BindFlags(fs *pflag.FlagSet) error {
	for flag, key := range flagKeys {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetLaunchConfig returns the launch settings.
func GetLaunchConfig() LaunchConfig {
	return LaunchConfig{
		X:         viper.GetFloat64("launch.x"),
		Y:         viper.GetFloat64("launch.y"),
		Z:         viper.GetFloat64("launch.z"),
		Speed:     viper.GetFloat64("launch.speed"),
		Teta:      viper.GetFloat64("launch.teta"),
		Phi:       viper.GetFloat64("launch.phi"),
		AngleUnit: viper.GetString("launch.angleUnit"),
	}
}

// GetTargetConfig returns the basket settings.
func GetTargetConfig() TargetConfig {
	return TargetConfig{
		X:             viper.GetFloat64("target.x"),
		Y:             viper.GetFloat64("target.y"),
		Z:             viper.GetFloat64("target.z"),
		CaptureRadius: viper.GetFloat64("target.captureRadius"),
	}
}

// GetSimulationConfig returns the time window and gravity.
func GetSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Seconds: viper.GetFloat64("simulation.seconds"),
		Steps:   viper.GetInt("simulation.steps"),
		Gravity: viper.GetFloat64("simulation.gravity"),
	}
}

// GetGridConfig returns the character grid settings.
func GetGridConfig() GridConfig {
	return GridConfig{
		Rows:       viper.GetInt("grid.rows"),
		Cols:       viper.GetInt("grid.cols"),
		RowsMeters: viper.GetFloat64("grid.rowsMeters"),
		ColsMeters: viper.GetFloat64("grid.colsMeters"),
	}
}

// GetSVGConfig returns the SVG output settings.
func GetSVGConfig() SVGConfig {
	return SVGConfig{
		Dir:        viper.GetString("svg.dir"),
		Filename:   viper.GetString("svg.filename"),
		Width:      viper.GetFloat64("svg.width"),
		Height:     viper.GetFloat64("svg.height"),
		Background: viper.GetString("svg.background"),
	}
}

// GetStorageConfig returns the run store settings.
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type: viper.GetString("storage.type"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path:     viper.GetString("storage.sqlite.path"),
			DumpPath: viper.GetString("storage.sqlite.dumpPath"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("storage.postgres.host"),
			Port:     viper.GetString("storage.postgres.port"),
			Username: viper.GetString("storage.postgres.username"),
			Password: viper.GetString("storage.postgres.password"),
			Database: viper.GetString("storage.postgres.database"),
			SSLMode:  viper.GetString("storage.postgres.sslMode"),
		},
		WebSocket: WebSocketConfig{
			URL:         viper.GetString("storage.websocket.url"),
			Secret:      viper.GetString("storage.websocket.secret"),
			DialTimeout: viper.GetDuration("storage.websocket.dialTimeout"),
			AckTimeout:  viper.GetDuration("storage.websocket.ackTimeout"),
		},
	}
}

// GetInfluxConfig returns the InfluxDB settings.
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:   viper.GetBool("influx.enabled"),
		Host:      viper.GetString("influx.host"),
		Port:      viper.GetString("influx.port"),
		Protocol:  viper.GetString("influx.protocol"),
		Token:     viper.GetString("influx.token"),
		Org:       viper.GetString("influx.org"),
		Bucket:    viper.GetString("influx.bucket"),
		BackupDir: viper.GetString("influx.backupDir"),
	}
}

// GetOTelConfig returns the OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetGraylogConfig returns the GELF sink settings.
func GetGraylogConfig() GraylogConfig {
	return GraylogConfig{
		Enabled: viper.GetBool("graylog.enabled"),
		Address: viper.GetString("graylog.address"),
	}
}

// GetAPIConfig returns the upload server settings.
func GetAPIConfig() APIConfig {
	return APIConfig{
		Enabled:   viper.GetBool("api.enabled"),
		ServerURL: viper.GetString("api.serverUrl"),
		APIKey:    viper.GetString("api.apiKey"),
	}
}

// GetVenueConfig returns the venue settings.
func GetVenueConfig() VenueConfig {
	return VenueConfig{
		Name:      viper.GetString("venue.name"),
		Latitude:  viper.GetFloat64("venue.latitude"),
		Longitude: viper.GetFloat64("venue.longitude"),
	}
}

// GetReportConfig returns the console report options.
func GetReportConfig() ReportConfig {
	return ReportConfig{
		HeightProfile: viper.GetBool("report.heightProfile"),
		ProfileHeight: viper.GetInt("report.profileHeight"),
	}
}
