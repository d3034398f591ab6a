package model

import "strings"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsDark() bool {
	return t == ThemeDark
}

func (t Theme) Toggle() Theme {
	if t.IsDark() {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme maps anything other than "dark" to the light theme.
func ParseTheme(raw string) Theme {
	if strings.EqualFold(strings.TrimSpace(raw), string(ThemeDark)) {
		return ThemeDark
	}
	return ThemeLight
}
