package persistence

import (
	"os"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

// AmbientTheme resolves the host's light/dark preference.
// An explicit configured value wins; otherwise the terminal background from
// COLORFGBG ("fg;bg") is used; otherwise light.
func AmbientTheme(configured string) domain.Theme {
	if t, err := domain.ParseTheme(configured); err == nil {
		return t
	}
	return themeFromColorFGBG(os.Getenv("COLORFGBG"))
}

func themeFromColorFGBG(v string) domain.Theme {
	if v == "" {
		return domain.ThemeLight
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return domain.ThemeLight
	}
	// ANSI 0-6 and 8 are dark backgrounds, 7 and 9-15 light ones.
	if bg >= 0 && (bg <= 6 || bg == 8) {
		return domain.ThemeDark
	}
	return domain.ThemeLight
}
