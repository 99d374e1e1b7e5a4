// Package config loads application settings from a .env file and environment
// variables. Environment variables always take precedence over .env values.
package config

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Season is the starting year of the current season.
	Season int
	// SeasonsRetained is how many seasons (current included) feed the
	// rating and home-advantage calculations.
	SeasonsRetained int

	// DataDir holds the cached per-season raw datasets.
	DataDir string
	// LedgerFile is the prediction ledger path. Empty selects
	// DataDir/predictions_<season>.json.
	LedgerFile string

	// RatingGamesThreshold: the current season joins the rating combination
	// only once some team has played more than this many games.
	RatingGamesThreshold int
	// HomeGamesThreshold: the same gate for home advantage, counted in home
	// games.
	HomeGamesThreshold int
	// StarTeamThreshold is the TotalRating above which a team counts as a
	// star team.
	StarTeamThreshold float64
	// HomeAdvExcludedSeasons lists anomaly seasons dropped from the
	// home-advantage average (e.g. the season played without spectators).
	HomeAdvExcludedSeasons []int

	// RefreshInterval is how often the pipeline re-runs.
	RefreshInterval time.Duration

	// FootballDataAPIKey authorises the fixtures feed client. When empty
	// the refresh runs from the on-disk cache only.
	FootballDataAPIKey string

	// JWT signing secret guarding the refresh endpoint.
	JWTSecret string

	// Server
	Debug      bool
	Port       string
	TLSDomains []string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() *Config {
	v := newViper()

	// Defaults
	v.SetDefault("SEASON", 2023)
	v.SetDefault("SEASONS_RETAINED", 3)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("LEDGER_FILE", "")
	v.SetDefault("RATING_GAMES_THRESHOLD", 4)
	v.SetDefault("HOME_GAMES_THRESHOLD", 4)
	v.SetDefault("STAR_TEAM_THRESHOLD", 0.75)
	v.SetDefault("HOME_ADV_EXCLUDED_SEASONS", "2020")
	v.SetDefault("REFRESH_INTERVAL", "1h")
	v.SetDefault("PORT", ":9000")
	v.SetDefault("TLS_DOMAINS", "")
	v.SetDefault("DEBUG", false)

	cfg := &Config{
		Season:                 v.GetInt("SEASON"),
		SeasonsRetained:        v.GetInt("SEASONS_RETAINED"),
		DataDir:                v.GetString("DATA_DIR"),
		LedgerFile:             v.GetString("LEDGER_FILE"),
		RatingGamesThreshold:   v.GetInt("RATING_GAMES_THRESHOLD"),
		HomeGamesThreshold:     v.GetInt("HOME_GAMES_THRESHOLD"),
		StarTeamThreshold:      v.GetFloat64("STAR_TEAM_THRESHOLD"),
		HomeAdvExcludedSeasons: splitInts(v.GetString("HOME_ADV_EXCLUDED_SEASONS")),
		RefreshInterval:        v.GetDuration("REFRESH_INTERVAL"),
		FootballDataAPIKey:     v.GetString("FOOTBALL_DATA_API_KEY"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		Debug:                  v.GetBool("DEBUG"),
		Port:                   v.GetString("PORT"),
		TLSDomains:             splitTrimmed(v.GetString("TLS_DOMAINS")),
	}

	cfg.validate()
	return cfg
}

// LedgerPath returns the prediction ledger location for the current season.
func (c *Config) LedgerPath() string {
	if c.LedgerFile != "" {
		return c.LedgerFile
	}
	return c.DataDir + "/predictions_" + strconv.Itoa(c.Season) + ".json"
}

// JWTKey returns the JWT signing key as a byte slice.
func (c *Config) JWTKey() []byte {
	return []byte(c.JWTSecret)
}

// Seasons returns the retained season years, current first.
func (c *Config) Seasons() []int {
	seasons := make([]int, 0, c.SeasonsRetained)
	for n := 0; n < c.SeasonsRetained; n++ {
		seasons = append(seasons, c.Season-n)
	}
	return seasons
}

func (c *Config) validate() {
	if c.Season < 1992 {
		log.Fatal("config: SEASON must be a season starting year")
	}
	if c.SeasonsRetained < 1 {
		log.Fatal("config: SEASONS_RETAINED must be at least 1")
	}
	if c.JWTSecret == "" {
		log.Fatal("config: JWT_SECRET must be set")
	}
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func splitInts(s string) []int {
	out := []int{}
	for _, p := range splitTrimmed(s) {
		n, err := strconv.Atoi(p)
		if err != nil {
			log.Fatalf("config: bad season year %q", p)
		}
		out = append(out, n)
	}
	return out
}
