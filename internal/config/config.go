package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	DBUrl    string `mapstructure:"DB_URL"`
	RedisUrl string `mapstructure:"REDIS_URL"`

	// Anchor of the play area.
	AnchorName    string  `mapstructure:"ANCHOR_NAME"`
	AnchorLat     float64 `mapstructure:"ANCHOR_LAT"`
	AnchorLng     float64 `mapstructure:"ANCHOR_LNG"`
	SearchRadiusM int     `mapstructure:"SEARCH_RADIUS_M"`

	OverpassURL string `mapstructure:"OVERPASS_URL"`
	PBFPath     string `mapstructure:"PBF_PATH"`

	ReferencePointsPath string `mapstructure:"REFERENCE_POINTS_PATH"`
	TransformPath       string `mapstructure:"TRANSFORM_PATH"`
	ShopsPath           string `mapstructure:"SHOPS_PATH"`
	FoodSpawnsPath      string `mapstructure:"FOOD_SPAWNS_PATH"`
	EquipmentSpawnsPath string `mapstructure:"EQUIPMENT_SPAWNS_PATH"`
	GeoJSONPath         string `mapstructure:"GEOJSON_PATH"`
	TablesPath          string `mapstructure:"TABLES_PATH"`

	LocalizedNameTag string `mapstructure:"LOCALIZED_NAME_TAG"`
	Seed             uint64 `mapstructure:"SEED"`
	Workers          int    `mapstructure:"WORKERS"`
	LogFile          string `mapstructure:"LOG_FILE"`
}

var defaults = map[string]any{
	"PORT":                  ":8080",
	"ANCHOR_NAME":           "Asakusabashi Station",
	"ANCHOR_LAT":            35.6963,
	"ANCHOR_LNG":            139.7832,
	"SEARCH_RADIUS_M":       500,
	"OVERPASS_URL":          "https://overpass-api.de/api/interpreter",
	"REFERENCE_POINTS_PATH": "data/reference_points.json",
	"TRANSFORM_PATH":        "data/transform.json",
	"SHOPS_PATH":            "data/shops_raw.json",
	"FOOD_SPAWNS_PATH":      "data/food_spawns.json",
	"EQUIPMENT_SPAWNS_PATH": "data/equipment_spawns.json",
	"GEOJSON_PATH":          "data/spawns.geojson",
	"LOCALIZED_NAME_TAG":    "name:ja",
	"SEED":                  0,
	"WORKERS":               4,
	"LOG_FILE":              "shopspawn.log",
}

// LoadConfig reads .env.<APP_ENV> from the working directory, then the
// environment. Missing files are not an error.
func LoadConfig() (Config, error) {
	return LoadConfigFrom(".")
}

// LoadConfigFrom is LoadConfig with an explicit search directory.
func LoadConfigFrom(dir string) (c Config, err error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName(fmt.Sprintf(".env.%s", env))
	v.SetConfigType("env")
	v.AddConfigPath(dir)

	// AutomaticEnv only resolves keys viper already knows, which the
	// defaults above cover. DB_URL and REDIS_URL have no default.
	v.AutomaticEnv()
	_ = v.BindEnv("DB_URL")
	_ = v.BindEnv("REDIS_URL")
	_ = v.BindEnv("PBF_PATH")
	_ = v.BindEnv("TABLES_PATH")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	err = v.Unmarshal(&c)
	return
}
