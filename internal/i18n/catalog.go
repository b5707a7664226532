// Package i18n holds the supported display language catalog and the static
// dashboard dictionary. Text outside the dictionary goes through machine translation.
package i18n

import (
	"strings"

	"intellistudy_backend/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LanguageOption represents a supported language option in the language selector.
type LanguageOption struct {
	Code   model.LanguageCode `json:"code"`
	Label  string             `json:"label"`
	Active bool               `json:"active"`
}

type entry struct {
	code  model.LanguageCode
	tag   language.Tag
	label string
}

var catalog = []entry{
	{code: model.LanguageEnglish, tag: language.English, label: "English"},
	{code: model.LanguageTamil, tag: language.Tamil, label: "Tamil"},
	{code: model.LanguageMalayalam, tag: language.Malayalam, label: "Malayalam"},
}

var byBase = make(map[string]entry, len(catalog))

func init() {
	for _, e := range catalog {
		base, _ := e.tag.Base()
		byBase[base.String()] = e
	}
}

// Default returns the catalog default, which is also the translation source language.
func Default() model.LanguageCode {
	return model.BaseLanguage
}

// Supported returns the supported codes in selector order.
func Supported() []model.LanguageCode {
	codes := make([]model.LanguageCode, len(catalog))
	for i, e := range catalog {
		codes[i] = e.code
	}
	return codes
}

// Parse accepts any BCP 47 tag whose base language is in the catalog.
func Parse(value string) (model.LanguageCode, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	base, conf := tag.Base()
	if conf == language.No {
		return "", false
	}
	e, ok := byBase[base.String()]
	if !ok {
		return "", false
	}
	return e.code, true
}

// IsSupported reports whether code is exactly a catalog code.
func IsSupported(code model.LanguageCode) bool {
	for _, e := range catalog {
		if e.code == code {
			return true
		}
	}
	return false
}

// Tag returns the language tag for a catalog code, falling back to the default.
func Tag(code model.LanguageCode) language.Tag {
	for _, e := range catalog {
		if e.code == code {
			return e.tag
		}
	}
	return language.English
}

// Options builds the selector options with the active language marked.
func Options(active model.LanguageCode) []LanguageOption {
	options := make([]LanguageOption, 0, len(catalog))
	for _, e := range catalog {
		options = append(options, LanguageOption{
			Code:   e.code,
			Label:  e.label,
			Active: e.code == active,
		})
	}
	return options
}

// Printer returns a message printer for the supplied code.
func Printer(code model.LanguageCode) *message.Printer {
	return message.NewPrinter(Tag(code))
}
