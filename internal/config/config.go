package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"RideHexmap-App/internal/domain/model"
)

// Config 環境変数から読み込むアプリケーション設定
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	LogFormat string

	MinResolution     int
	MaxResolution     int
	DefaultResolution int

	MapZoom     float64
	MapHeight   int
	MaxUploadMB int64
}

// Load .envファイル（存在すれば）と環境変数から設定を読み込む
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Warn(".env file not found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv 環境変数のみから設定を読み込む
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "release"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.MinResolution, err = getEnvInt("HEX_MIN_RESOLUTION", model.DefaultMinResolution); err != nil {
		return nil, err
	}
	if cfg.MaxResolution, err = getEnvInt("HEX_MAX_RESOLUTION", model.DefaultMaxResolution); err != nil {
		return nil, err
	}
	if cfg.DefaultResolution, err = getEnvInt("HEX_DEFAULT_RESOLUTION", model.DefaultResolution); err != nil {
		return nil, err
	}
	if cfg.MapHeight, err = getEnvInt("MAP_HEIGHT", 1000); err != nil {
		return nil, err
	}
	uploadMB, err := getEnvInt("MAX_UPLOAD_MB", 32)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadMB = int64(uploadMB)

	zoom := getEnv("MAP_DEFAULT_ZOOM", "11")
	if cfg.MapZoom, err = strconv.ParseFloat(zoom, 64); err != nil {
		return nil, fmt.Errorf("MAP_DEFAULT_ZOOMが数値ではありません: %q", zoom)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 解像度の範囲と既定値の整合性を検証
func (c *Config) Validate() error {
	if c.MinResolution < model.GridMinResolution {
		return &model.ConfigurationError{
			Field: "HEX_MIN_RESOLUTION", Value: c.MinResolution,
			Min: model.GridMinResolution, Max: model.GridMaxResolution, Bound: model.BoundMin,
		}
	}
	if c.MaxResolution > model.GridMaxResolution {
		return &model.ConfigurationError{
			Field: "HEX_MAX_RESOLUTION", Value: c.MaxResolution,
			Min: model.GridMinResolution, Max: model.GridMaxResolution, Bound: model.BoundMax,
		}
	}
	if c.MinResolution > c.MaxResolution {
		return fmt.Errorf("HEX_MIN_RESOLUTION(%d)がHEX_MAX_RESOLUTION(%d)を超えています", c.MinResolution, c.MaxResolution)
	}
	if c.DefaultResolution < c.MinResolution {
		return &model.ConfigurationError{
			Field: "HEX_DEFAULT_RESOLUTION", Value: c.DefaultResolution,
			Min: c.MinResolution, Max: c.MaxResolution, Bound: model.BoundMin,
		}
	}
	if c.DefaultResolution > c.MaxResolution {
		return &model.ConfigurationError{
			Field: "HEX_DEFAULT_RESOLUTION", Value: c.DefaultResolution,
			Min: c.MinResolution, Max: c.MaxResolution, Bound: model.BoundMax,
		}
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MBは1以上である必要があります")
	}
	return nil
}

// MapStyle 既定の表示設定に地図設定を反映したもの
func (c *Config) MapStyle() model.MapStyle {
	style := model.DefaultMapStyle()
	style.Zoom = c.MapZoom
	style.Height = c.MapHeight
	return style
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%sが整数ではありません: %q", key, v)
	}
	return n, nil
}
