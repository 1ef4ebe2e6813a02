package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "slf"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	Brand   BrandConfig
	Bank    BankConfig
	History HistoryConfig
	Images  ImageConfig
}

// Load reads configuration from the environment. Every field carries a
// default so the zero-config embedded path works without any environment at
// all. A .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"SLF_APP_ENV" default:"dev"`
	LogLevel string `envconfig:"SLF_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BrandConfig is the retailer identity printed on every invoice.
type BrandConfig struct {
	Title          string `envconfig:"SLF_BRAND_TITLE" default:"South Lanka Fireworks"`
	RegistrationNo string `envconfig:"SLF_BRAND_REG_NO" default:"Reg.No : SG/5276"`
	Proprietor     string `envconfig:"SLF_BRAND_PROPRIETOR" default:"J.W. Chaminda Thushara."`
	AddressLine1   string `envconfig:"SLF_BRAND_ADDRESS_LINE1" default:"07 Dadalla Cross Road,"`
	AddressLine2   string `envconfig:"SLF_BRAND_ADDRESS_LINE2" default:"Dadalla, Galle."`
	Phone          string `envconfig:"SLF_BRAND_PHONE" default:"077 713 5516 / 091 224 6572"`
	Email          string `envconfig:"SLF_BRAND_EMAIL" default:"southlankafireworks@gmail.com"`
	Website        string `envconfig:"SLF_BRAND_WEBSITE" default:"www.slfireworks.com"`
	FooterMessage  string `envconfig:"SLF_BRAND_FOOTER" default:"Thank you for choosing South Lanka Fireworks!"`

	BackdropURI string `envconfig:"SLF_BRAND_BACKDROP_URI" default:""`
	LogoURI     string `envconfig:"SLF_BRAND_LOGO_URI" default:""`

	RegIcon     string `envconfig:"SLF_BRAND_ICON_REG" default:""`
	PersonIcon  string `envconfig:"SLF_BRAND_ICON_PERSON" default:""`
	AddressIcon string `envconfig:"SLF_BRAND_ICON_ADDRESS" default:""`
	PhoneIcon   string `envconfig:"SLF_BRAND_ICON_PHONE" default:""`
	EmailIcon   string `envconfig:"SLF_BRAND_ICON_EMAIL" default:""`
	WebIcon     string `envconfig:"SLF_BRAND_ICON_WEB" default:""`
}

// BankConfig is the fixed account block optionally printed on invoices.
type BankConfig struct {
	AccountNo  string `envconfig:"SLF_BANK_ACC_NO" default:"8011371317"`
	BankName   string `envconfig:"SLF_BANK_NAME" default:"Commercial Bank"`
	Branch     string `envconfig:"SLF_BANK_BRANCH" default:"Galle"`
	HolderName string `envconfig:"SLF_BANK_HOLDER" default:"J.W.C.Thushara"`
}

// Detail is one label/value pair of the bank block.
type Detail struct {
	Label string
	Value string
}

// Details returns the bank block in its fixed print order.
func (b BankConfig) Details() []Detail {
	return []Detail{
		{Label: "Acc No", Value: b.AccountNo},
		{Label: "Bank Name", Value: b.BankName},
		{Label: "Branch", Value: b.Branch},
		{Label: "Acc Holder Name", Value: b.HolderName},
	}
}

type HistoryConfig struct {
	Limit      int    `envconfig:"SLF_HISTORY_LIMIT" default:"1000"`
	StorageKey string `envconfig:"SLF_HISTORY_STORAGE_KEY" default:"slf-quotation-history"`
	FilePath   string `envconfig:"SLF_HISTORY_FILE_PATH" default:""`
}

type ImageConfig struct {
	FetchTimeout time.Duration `envconfig:"SLF_IMAGE_FETCH_TIMEOUT" default:"10s"`
	SquareSide   int           `envconfig:"SLF_IMAGE_SQUARE_SIDE" default:"320"`
	MaxWidth     int           `envconfig:"SLF_IMAGE_MAX_WIDTH" default:"600"`
}
