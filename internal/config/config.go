package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vfg2006/budget-planner-api/internal/domain"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	Engine        Engine        `mapstructure:",squash"`
	RecomputeSync RecomputeSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	Secret          string `mapstructure:"auth_secret"`
	TokenTTLMinutes int    `mapstructure:"auth_token_ttl_minutes"`
}

// Engine concentra os knobs de cálculo reconhecidos pelo núcleo.
type Engine struct {
	RoundingMode             string `mapstructure:"rounding_mode"`
	AllocationResidualPolicy string `mapstructure:"allocation_residual_policy"`
	RecomputeDeleteScope     string `mapstructure:"recompute_delete_scope"`
	BenefitDaysMode          string `mapstructure:"benefit_days_mode"`
	LockTimeoutSeconds       int    `mapstructure:"scenario_lock_timeout_seconds"`
}

const (
	ResidualLargestRemainder = "largest_remainder"
	ResidualProportional     = "proportional"

	DeleteScopeFull       = "full"
	DeleteScopePerSection = "per_section"

	BenefitDaysCalendar = "calendar"
	BenefitDaysFixed    = "fixed"
)

// Rounding traduz o knob textual para o modo de arredondamento do domínio.
func (e Engine) Rounding() domain.RoundingMode {
	if e.RoundingMode == "half_up" {
		return domain.RoundHalfUp
	}
	return domain.RoundHalfEven
}

type RecomputeSync struct {
	CronSchedule string `mapstructure:"recompute_sync_cron"`
	Enabled      bool   `mapstructure:"recompute_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/budget")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("AUTH_TOKEN_TTL_MINUTES", 480)

	// Knobs do motor de cálculo
	viper.SetDefault("ROUNDING_MODE", "half_even")
	viper.SetDefault("ALLOCATION_RESIDUAL_POLICY", ResidualLargestRemainder)
	viper.SetDefault("RECOMPUTE_DELETE_SCOPE", DeleteScopeFull)
	viper.SetDefault("BENEFIT_DAYS_MODE", BenefitDaysCalendar)
	viper.SetDefault("SCENARIO_LOCK_TIMEOUT_SECONDS", 30)

	// Recálculo noturno dos cenários ativos
	viper.SetDefault("RECOMPUTE_SYNC_CRON", "0 2 * * *")
	viper.SetDefault("RECOMPUTE_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// loadEnvFile tenta carregar o .env das localizações conhecidas.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Warn("Nenhum arquivo .env encontrado; usando variáveis de ambiente e defaults")
}
