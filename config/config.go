package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultAccessTokenTTL     = time.Hour
	defaultRefreshTokenTTL    = 7 * 24 * time.Hour
	defaultRememberMeTTL      = 30 * 24 * time.Hour
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		// AllowOrigins lists the CORS origins; empty allows all.
		AllowOrigins []string `json:"allowOrigins" yaml:"allowOrigins"`
		// TrustedProxies lists proxy CIDRs whose X-Forwarded-For is honoured.
		// Empty means the socket peer is the client.
		TrustedProxies []string `json:"trustedProxies" yaml:"trustedProxies"`
		Timeouts       struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	// Database tunes how the service uses Postgres on top of the connection settings.
	Database *DatabaseConfig `json:"database" yaml:"database"`

	Token TokenConfig `json:"token" yaml:"token"`

	GoogleOAuth *GoogleOAuthConfig `json:"googleOAuth" yaml:"googleOAuth"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// RateLimit throttles the sign-in and token endpoints per client IP.
	RateLimit *RateLimitConfig `json:"rateLimit" yaml:"rateLimit"`

	// QRCode configuration for product QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Storage configuration for product images
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`

	// Worker configures the Pub/Sub push receiver that maintains product labels.
	Worker *WorkerConfig `json:"worker" yaml:"worker"`
}

// TokenConfig defines access and refresh token issuance.
type TokenConfig struct {
	Issuer          string        `json:"issuer" yaml:"issuer"`
	Audience        string        `json:"audience" yaml:"audience"`
	AccessTokenTTL  time.Duration `json:"accessTokenTTL" yaml:"accessTokenTTL"`
	RefreshTokenTTL time.Duration `json:"refreshTokenTTL" yaml:"refreshTokenTTL"`
	RememberMeTTL   time.Duration `json:"rememberMeTTL" yaml:"rememberMeTTL"`

	// ActiveKeyID selects the signing key for new tokens. Every key in
	// SigningKeys is accepted when verifying.
	ActiveKeyID string       `json:"activeKeyId" yaml:"activeKeyId"`
	SigningKeys []SigningKey `json:"signingKeys" yaml:"signingKeys"`
}

// SigningKey is an HMAC secret identified by the JWT kid header.
type SigningKey struct {
	Kid    string `json:"kid" yaml:"kid"`
	Secret string `json:"secret" yaml:"secret"`
}

type GoogleOAuthConfig struct {
	ClientID     string `json:"clientId" yaml:"clientId"`
	ClientSecret string `json:"clientSecret" yaml:"clientSecret"`
	RedirectURI  string `json:"redirectUri" yaml:"redirectUri"`
	Scopes       string `json:"scopes" yaml:"scopes"`
	// UserInfoURL overrides the profile endpoint, mainly for tests.
	UserInfoURL string `json:"userInfoUrl" yaml:"userInfoUrl"`
	// TokenURL overrides the token endpoint, mainly for tests.
	TokenURL string `json:"tokenUrl" yaml:"tokenUrl"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost        int `json:"bcryptCost" yaml:"bcryptCost"`
	MaxActiveSessions int `json:"maxActiveSessions" yaml:"maxActiveSessions"`
	// MaxFailedAttempts locks the account after this many wrong passwords. Zero disables lockout.
	MaxFailedAttempts int           `json:"maxFailedAttempts" yaml:"maxFailedAttempts"`
	LockoutDuration   time.Duration `json:"lockoutDuration" yaml:"lockoutDuration"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// DatabaseConfig controls startup and statement logging for Postgres.
type DatabaseConfig struct {
	// AutoMigrate applies the schema on start. cmd/migrate does the same explicitly.
	AutoMigrate     bool          `json:"autoMigrate" yaml:"autoMigrate"`
	ConnectAttempts int           `json:"connectAttempts" yaml:"connectAttempts"`
	ConnectBackoff  time.Duration `json:"connectBackoff" yaml:"connectBackoff"`
	// SlowQueryThreshold logs statements slower than this as warnings.
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
	// PoolWaitThreshold is the average pool wait that is reported as a warning.
	PoolWaitThreshold time.Duration `json:"poolWaitThreshold" yaml:"poolWaitThreshold"`
}

// RateLimitConfig defines the per client budget of the throttled routes.
type RateLimitConfig struct {
	Enabled           bool `json:"enabled" yaml:"enabled"`
	RequestsPerMinute int  `json:"requestsPerMinute" yaml:"requestsPerMinute"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "noop", "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// StorageConfig defines where product images are kept.
type StorageConfig struct {
	// BucketURL is a gocloud.dev blob URL, e.g. file:///var/lib/manero/images,
	// gs://bucket or mem://.
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`

	// PublicBaseURL is prefixed to object keys to form image URLs.
	PublicBaseURL string `json:"publicBaseUrl" yaml:"publicBaseUrl"`

	// MaxImageSize is the upload limit in bytes.
	MaxImageSize int64 `json:"maxImageSize" yaml:"maxImageSize"`
}

// MetricsConfig defines the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// WorkerConfig defines the event worker HTTP endpoint.
type WorkerConfig struct {
	Port int `json:"port" yaml:"port"`
	// VerifyPushAuth requires a Google-signed OIDC token on push requests.
	VerifyPushAuth bool `json:"verifyPushAuth" yaml:"verifyPushAuth"`
	// PushAudience is the expected token audience; empty uses the request URL.
	PushAudience string `json:"pushAudience" yaml:"pushAudience"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if keys := buildSigningKeysFromEnv(); len(keys) > 0 {
		cfg.Token.SigningKeys = keys
	}
	cfg.Token.applyDefaults()

	if err := cfg.Token.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (t *TokenConfig) applyDefaults() {
	if t.AccessTokenTTL <= 0 {
		t.AccessTokenTTL = defaultAccessTokenTTL
	}
	if t.RefreshTokenTTL <= 0 {
		t.RefreshTokenTTL = defaultRefreshTokenTTL
	}
	if t.RememberMeTTL <= 0 {
		t.RememberMeTTL = defaultRememberMeTTL
	}
	if t.ActiveKeyID == "" && len(t.SigningKeys) == 1 {
		t.ActiveKeyID = t.SigningKeys[0].Kid
	}
}

// Validate checks that a usable signing key is configured.
func (t *TokenConfig) Validate() error {
	if len(t.SigningKeys) == 0 {
		return errors.New("token.signingKeys must contain at least one key")
	}

	seen := make(map[string]struct{}, len(t.SigningKeys))
	for _, key := range t.SigningKeys {
		if key.Kid == "" || key.Secret == "" {
			return errors.New("token.signingKeys entries need both kid and secret")
		}
		if _, dup := seen[key.Kid]; dup {
			return errors.Errorf("duplicate signing key id %q", key.Kid)
		}
		seen[key.Kid] = struct{}{}
	}

	if _, ok := seen[t.ActiveKeyID]; !ok {
		return errors.Errorf("token.activeKeyId %q does not match any signing key", t.ActiveKeyID)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}

// buildSigningKeysFromEnv reads signing keys from TOKEN_SIGNINGKEYS_{index}_KID
// and TOKEN_SIGNINGKEYS_{index}_SECRET so secrets can stay out of the YAML file.
func buildSigningKeysFromEnv() []SigningKey {
	var keys []SigningKey

	for i := 0; ; i++ {
		prefix := "TOKEN_SIGNINGKEYS_" + strconv.Itoa(i) + "_"

		kid := os.Getenv(prefix + "KID")
		secret := os.Getenv(prefix + "SECRET")
		if kid == "" || secret == "" {
			break
		}

		keys = append(keys, SigningKey{Kid: kid, Secret: secret})
	}

	return keys
}
