// Package config loads stockpile's settings.
//
// Settings live in a small TOML file at ~/.config/stockpile/config.toml. A
// missing file is not an error: every field has a default, so a fresh install
// works against the public catalog API with no setup. Environment variables
// (STOCKPILE_API_URL, STOCKPILE_THEME) take precedence over the file, which
// keeps one-off overrides out of persistent state.
//
// Recognized keys:
//
//	api_base_url   = "https://app.spiritx.co.nz/api"
//	image_base_url = "https://app.spiritx.co.nz/storage"
//	category_id    = 99
//	page_size      = 5        # one of 5, 10, 25
//	theme          = "Dracula"
package config
