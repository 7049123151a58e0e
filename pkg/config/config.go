package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	MiB = 1024 * 1024

	defaultDotEnvPath = ".env"
)

// Config holds the complete client configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server"`
	Security    SecurityConfig    `yaml:"security" json:"security"`
	Transfer    TransferConfig    `yaml:"transfer" json:"transfer"`
	Local       LocalConfig       `yaml:"local" json:"local"`
	ObjectStore ObjectStoreConfig `yaml:"objectStore" json:"objectStore"`
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
}

// ServerConfig locates the SDTP server
type ServerConfig struct {
	Host    string        `yaml:"host" json:"host" env:"SDTP_SERVER"`
	Version string        `yaml:"version" json:"version" env:"SDTP_VERSION" validate:"required"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" env:"SDTP_TIMEOUT" validate:"gt=0"`
}

// SecurityConfig holds the mutual TLS material
type SecurityConfig struct {
	// ClientCertPath may point at a combined PEM holding both certificate and key.
	ClientCertPath     string `yaml:"clientCertPath" json:"clientCertPath" env:"SDTP_CLIENT_CERT"`
	ClientKeyPath      string `yaml:"clientKeyPath" json:"clientKeyPath" env:"SDTP_CLIENT_KEY"`
	CACertPath         string `yaml:"caCertPath" json:"caCertPath" env:"SDTP_CA_CERT"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify" json:"insecureSkipVerify" env:"SDTP_INSECURE_SKIP_VERIFY"`
	MinTLSVersion      string `yaml:"minTlsVersion" json:"minTlsVersion" env:"SDTP_MIN_TLS_VERSION" validate:"oneof=1.2 1.3"`
}

// TransferConfig tunes the transfer pipeline
type TransferConfig struct {
	ChunkSizeMB    int           `yaml:"chunkSizeMB" json:"chunkSizeMB" env:"SDTP_CHUNK_SIZE_MB" validate:"gte=1"`
	ReadBufferSize int           `yaml:"readBufferSize" json:"readBufferSize" env:"SDTP_READ_BUFFER_SIZE" validate:"gte=1"`
	Concurrency    int           `yaml:"concurrency" json:"concurrency" env:"SDTP_CONCURRENCY" validate:"gte=1"`
	PageSize       int           `yaml:"pageSize" json:"pageSize" env:"SDTP_PAGE_SIZE" validate:"gte=1"`
	AbortTimeout   time.Duration `yaml:"abortTimeout" json:"abortTimeout" env:"SDTP_ABORT_TIMEOUT" validate:"gt=0"`
}

// LocalConfig is the local destination
type LocalConfig struct {
	Path              string `yaml:"path" json:"path" env:"LOCAL_FILE_PATH,LOCAL_PATH"`
	RefuseUnsafeNames bool   `yaml:"refuseUnsafeNames" json:"refuseUnsafeNames" env:"SDTP_REFUSE_UNSAFE_NAMES"`
}

// ObjectStoreConfig is the S3 destination. Credentials fall back to the AWS
// default chain when left empty.
type ObjectStoreConfig struct {
	Enabled         bool   `yaml:"enabled" json:"enabled" env:"SDTP_USE_S3"`
	Bucket          string `yaml:"bucket" json:"bucket" env:"S3_BUCKET" validate:"required_if=Enabled true"`
	Region          string `yaml:"region" json:"region" env:"AWS_DEFAULT_REGION,AWS_REGION" validate:"required_if=Enabled true"`
	Endpoint        string `yaml:"endpoint,omitempty" json:"endpoint,omitempty" env:"S3_ENDPOINT_URL" validate:"omitempty,url"`
	UsePathStyle    bool   `yaml:"usePathStyle" json:"usePathStyle" env:"S3_USE_PATH_STYLE"`
	KeyPrefix       string `yaml:"keyPrefix,omitempty" json:"keyPrefix,omitempty" env:"S3_KEY_PREFIX"`
	AccessKeyID     string `yaml:"accessKeyId,omitempty" json:"-" env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secretAccessKey,omitempty" json:"-" env:"AWS_SECRET_ACCESS_KEY"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" json:"format" env:"LOG_FORMAT" validate:"oneof=text json"`
	Output string `yaml:"output" json:"output" env:"LOG_OUTPUT"`
}

// DefaultConfig Default configuration values
var DefaultConfig = Config{
	Server: ServerConfig{
		Version: "v1",
		Timeout: 30 * time.Second,
	},
	Security: SecurityConfig{
		ClientCertPath: "client.crt",
		ClientKeyPath:  "client.key",
		MinTLSVersion:  "1.2",
	},
	Transfer: TransferConfig{
		ChunkSizeMB:    8,
		ReadBufferSize: 8 * 1024,
		Concurrency:    1,
		PageSize:       100,
		AbortTimeout:   30 * time.Second,
	},
	Logging: LoggingConfig{
		Level:  "INFO",
		Format: "text",
		Output: "stderr",
	},
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig loads configuration from multiple sources in order of precedence:
// 1. Environment variables (highest precedence)
// 2. .env file in the working directory, never overriding the real environment
// 3. Configuration file (path, then SDTP_CONFIG_PATH, then the search paths)
// 4. Default values (lowest precedence)
// Command line flags are applied on top by the caller.
func LoadConfig(path string) (*Config, string, error) {
	config := DefaultConfig

	if err := loadDotEnv(defaultDotEnvPath); err != nil {
		return nil, "", err
	}

	source, err := loadFromFile(&config, path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config file: %w", err)
	}

	if err := loadFromEnv(&config); err != nil {
		return nil, "", fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, "", fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, source, nil
}

// loadDotEnv exports the variables of a .env file that are not already set.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func searchPaths() []string {
	paths := []string{
		os.Getenv("SDTP_CONFIG_PATH"),
		"./sdtp.yaml",
		"./config/sdtp.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".sdtp", "config.yaml"))
	}
	return append(paths, "/etc/sdtp/config.yaml")
}

// loadFromFile loads configuration from a YAML file. An explicit path must
// exist; the search paths are optional.
func loadFromFile(config *Config, explicit string) (string, error) {
	if explicit != "" {
		if err := readInto(config, explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	for _, path := range searchPaths() {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		if err := readInto(config, path); err != nil {
			return "", err
		}
		return path, nil
	}

	return "built-in defaults (no config file found)", nil
}

func readInto(config *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// loadFromEnv overrides every field whose env tag names a variable that is set
func loadFromEnv(config *Config) error {
	_, err := env.UnmarshalFromEnviron(config)
	return err
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("invalid %s: %q fails %q", fe.Namespace(), fmt.Sprint(fe.Value()), fe.Tag())
		}
		return err
	}

	// Validate logging level
	validLevels := map[string]bool{
		"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true,
	}
	if !validLevels[strings.ToUpper(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// SegmentSize is the configured chunk size in bytes
func (c *Config) SegmentSize() int {
	return c.Transfer.ChunkSizeMB * MiB
}

// BaseURL returns https://{host}/sdtp/{version}
func (c *Config) BaseURL() string {
	return fmt.Sprintf("https://%s/sdtp/%s", c.Server.Host, c.Server.Version)
}

// TLSVersion maps MinTLSVersion onto the crypto/tls constant
func (c *Config) TLSVersion() uint16 {
	if c.Security.MinTLSVersion == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}

// UseObjectStore reports whether transfers go to S3 instead of local disk
func (c *Config) UseObjectStore() bool {
	return c.ObjectStore.Enabled && c.ObjectStore.Bucket != ""
}

func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c *Config) SaveToFile(path string) error {
	data, err := c.ToYAML()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0600)
}

// GenerateDefaultConfig creates a default configuration file
func GenerateDefaultConfig(path string) error {
	config := DefaultConfig
	return config.SaveToFile(path)
}
