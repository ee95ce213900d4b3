package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"lobby-service/internal/utils/runtime"
	"strings"
	"time"
)

const (
	authorityURLFlag     = "authority-url"
	authorityAPIKeyFlag  = "authority-api-key"
	authorityTimeoutFlag = "authority-timeout"
	profileCacheTTLFlag  = "profile-cache-ttl"

	panicDurationFlag  = "panic-duration"
	panicCooldownFlag  = "panic-cooldown"
	freezeDurationFlag = "freeze-duration"
	sweepIntervalFlag  = "sweep-interval"

	kafkaEnabledFlag = "kafka-enabled"
	kafkaHostFlag    = "kafka-host"
	kafkaPortFlag    = "kafka-port"

	serverIDFlag    = "server-id"
	developmentFlag = "development"
	grpcPortFlag    = "grpc-port"
	httpPortFlag    = "http-port"
)

type Config struct {
	Authority AuthorityConfig
	Safety    SafetyConfig
	Kafka     KafkaConfig

	// ServerID identifies this lobby instance in cross-process events.
	ServerID    string
	Development bool

	GRPCPort int
	HTTPPort int
}

type AuthorityConfig struct {
	BaseURL string
	// APIKey is sent as a bearer token when non-empty.
	APIKey  string
	Timeout time.Duration

	ProfileCacheTTL time.Duration
}

type SafetyConfig struct {
	PanicDuration  time.Duration
	PanicCooldown  time.Duration
	FreezeDuration time.Duration
	SweepInterval  time.Duration
}

type KafkaConfig struct {
	Enabled bool
	Host    string
	Port    int
}

func LoadGlobalConfig() (*Config, error) {
	viper.SetDefault(authorityURLFlag, "http://localhost:8080/api/v1")
	viper.SetDefault(authorityAPIKeyFlag, "")
	viper.SetDefault(authorityTimeoutFlag, 10*time.Second)
	viper.SetDefault(profileCacheTTLFlag, 5*time.Minute)

	viper.SetDefault(panicDurationFlag, 10*time.Minute)
	viper.SetDefault(panicCooldownFlag, 30*time.Minute)
	viper.SetDefault(freezeDurationFlag, 30*time.Minute)
	viper.SetDefault(sweepIntervalFlag, time.Minute)

	viper.SetDefault(kafkaEnabledFlag, false)
	viper.SetDefault(kafkaHostFlag, "localhost")
	viper.SetDefault(kafkaPortFlag, 9092)

	viper.SetDefault(serverIDFlag, "lobby-1")
	viper.SetDefault(developmentFlag, true)
	viper.SetDefault(grpcPortFlag, 10010)
	viper.SetDefault(httpPortFlag, 8081)

	pflag.String(authorityURLFlag, viper.GetString(authorityURLFlag), "Authority REST API base URL")
	pflag.String(authorityAPIKeyFlag, viper.GetString(authorityAPIKeyFlag), "Authority API key (bearer token)")
	pflag.Duration(authorityTimeoutFlag, viper.GetDuration(authorityTimeoutFlag), "Authority request timeout")
	pflag.Duration(profileCacheTTLFlag, viper.GetDuration(profileCacheTTLFlag), "Player profile cache TTL")
	pflag.Duration(panicDurationFlag, viper.GetDuration(panicDurationFlag), "How long panic mode stays active")
	pflag.Duration(panicCooldownFlag, viper.GetDuration(panicCooldownFlag), "Cooldown between panic activations")
	pflag.Duration(freezeDurationFlag, viper.GetDuration(freezeDurationFlag), "How long a freeze stays active")
	pflag.Duration(sweepIntervalFlag, viper.GetDuration(sweepIntervalFlag), "Safety mode expiry sweep interval")
	pflag.Bool(kafkaEnabledFlag, viper.GetBool(kafkaEnabledFlag), "Enable Kafka event sync")
	pflag.String(kafkaHostFlag, viper.GetString(kafkaHostFlag), "Kafka host")
	pflag.Int32(kafkaPortFlag, viper.GetInt32(kafkaPortFlag), "Kafka port")
	pflag.String(serverIDFlag, viper.GetString(serverIDFlag), "Lobby server id")
	pflag.Bool(developmentFlag, viper.GetBool(developmentFlag), "Development mode")
	pflag.Int32(grpcPortFlag, viper.GetInt32(grpcPortFlag), "gRPC health port")
	pflag.Int32(httpPortFlag, viper.GetInt32(httpPortFlag), "HTTP metrics port")
	pflag.Parse()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	// Bind the viper flags to environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range []string{
		authorityURLFlag, authorityAPIKeyFlag, authorityTimeoutFlag, profileCacheTTLFlag,
		panicDurationFlag, panicCooldownFlag, freezeDurationFlag, sweepIntervalFlag,
		kafkaEnabledFlag, kafkaHostFlag, kafkaPortFlag,
		serverIDFlag, developmentFlag, grpcPortFlag, httpPortFlag,
	} {
		runtime.Must(viper.BindEnv(key))
	}

	return &Config{
		Authority: AuthorityConfig{
			BaseURL:         strings.TrimRight(viper.GetString(authorityURLFlag), "/"),
			APIKey:          viper.GetString(authorityAPIKeyFlag),
			Timeout:         viper.GetDuration(authorityTimeoutFlag),
			ProfileCacheTTL: viper.GetDuration(profileCacheTTLFlag),
		},
		Safety: SafetyConfig{
			PanicDuration:  viper.GetDuration(panicDurationFlag),
			PanicCooldown:  viper.GetDuration(panicCooldownFlag),
			FreezeDuration: viper.GetDuration(freezeDurationFlag),
			SweepInterval:  viper.GetDuration(sweepIntervalFlag),
		},
		Kafka: KafkaConfig{
			Enabled: viper.GetBool(kafkaEnabledFlag),
			Host:    viper.GetString(kafkaHostFlag),
			Port:    int(viper.GetInt32(kafkaPortFlag)),
		},
		ServerID:    viper.GetString(serverIDFlag),
		Development: viper.GetBool(developmentFlag),
		GRPCPort:    int(viper.GetInt32(grpcPortFlag)),
		HTTPPort:    int(viper.GetInt32(httpPortFlag)),
	}, nil
}
