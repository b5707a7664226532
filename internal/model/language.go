package model

// LanguageCode 界面显示语言
type LanguageCode string

const (
	LanguageEnglish   LanguageCode = "en"
	LanguageTamil     LanguageCode = "ta"
	LanguageMalayalam LanguageCode = "ml"
)

// BaseLanguage 所有界面文案的源语言
const BaseLanguage = LanguageEnglish

func (l LanguageCode) String() string {
	return string(l)
}

type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

func (t ThemeMode) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

func (t ThemeMode) Toggle() ThemeMode {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Preference 浏览器会话级别的显示偏好，只会被覆盖，不会删除
type Preference struct {
	Language LanguageCode `json:"language"`
	Theme    ThemeMode    `json:"theme"`
}

func DefaultPreference() Preference {
	return Preference{Language: BaseLanguage, Theme: ThemeLight}
}
