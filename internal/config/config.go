package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings stockpile needs to talk to the catalog API.
type Config struct {
	APIBaseURL   string
	ImageBaseURL string
	CategoryID   int
	PageSize     int
	Theme        string
}

const (
	defaultConfigPath   = "~/.config/stockpile/config.toml"
	defaultAPIBaseURL   = "https://app.spiritx.co.nz/api"
	defaultImageBaseURL = "https://app.spiritx.co.nz/storage"
	defaultCategoryID   = 99
	defaultPageSize     = 5
	defaultTheme        = "Dracula"
)

// PageSizes are the page sizes the product table may use.
var PageSizes = []int{5, 10, 25}

// ValidPageSize reports whether n is one of the allowed page sizes.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if n == s {
			return true
		}
	}
	return false
}

// Load locates and parses the stockpile config, falling back to defaults when
// the file is missing. Environment variables STOCKPILE_API_URL and
// STOCKPILE_THEME override the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBaseURL:   defaultAPIBaseURL,
		ImageBaseURL: defaultImageBaseURL,
		CategoryID:   defaultCategoryID,
		PageSize:     defaultPageSize,
		Theme:        defaultTheme,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBaseURL   string `toml:"api_base_url"`
		ImageBaseURL string `toml:"image_base_url"`
		CategoryID   int    `toml:"category_id"`
		PageSize     int    `toml:"page_size"`
		Theme        string `toml:"theme"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(raw.ImageBaseURL); v != "" {
		cfg.ImageBaseURL = v
	}
	if raw.CategoryID > 0 {
		cfg.CategoryID = raw.CategoryID
	}
	if ValidPageSize(raw.PageSize) {
		cfg.PageSize = raw.PageSize
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		cfg.Theme = v
	}

	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv("STOCKPILE_API_URL")); v != "" {
		cfg.APIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("STOCKPILE_THEME")); v != "" {
		cfg.Theme = v
	}
	return cfg
}

// ImageURL resolves a stored image path against the image base URL.
func (c Config) ImageURL(imagePath string) string {
	trimmed := strings.TrimSpace(imagePath)
	if trimmed == "" {
		return ""
	}
	return strings.TrimRight(c.ImageBaseURL, "/") + "/" + strings.TrimLeft(trimmed, "/")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
