package i18n

import (
	"intellistudy_backend/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 侧边栏静态文案的 key
const (
	LabelLogoTitle        = "logoTitle"
	LabelCreateNew        = "createNew"
	LabelDashboard        = "Dashboard"
	LabelUpgrade          = "Upgrade"
	LabelAvailableCredits = "availableCredits"
	LabelUsedCredits      = "usedCredits"
	LabelUpgradeHint      = "upgradeHint"
	LabelLanguage         = "languageLabel"
	LabelAdminDashboard   = "adminDashboard"
)

var labelKeys = []string{
	LabelLogoTitle,
	LabelCreateNew,
	LabelDashboard,
	LabelUpgrade,
	LabelAvailableCredits,
	LabelUsedCredits,
	LabelUpgradeHint,
	LabelLanguage,
	LabelAdminDashboard,
}

var dictionary = map[language.Tag]map[string]string{
	language.English: {
		LabelLogoTitle:        "INTELLISTUDY",
		LabelCreateNew:        "Create New",
		LabelDashboard:        "Course Hub",
		LabelUpgrade:          "Subscribe",
		LabelAvailableCredits: "Available Credits",
		LabelUsedCredits:      "Used Credits",
		LabelUpgradeHint:      "Upgrade your plan for more courses",
		LabelLanguage:         "Select Language",
		LabelAdminDashboard:   "Admin Dashboard",
	},
	language.Tamil: {
		LabelLogoTitle:        "டாஷ்போர்ட்",
		LabelCreateNew:        "புதியது உருவாக்கவும்",
		LabelDashboard:        "டாஷ்போர்ட்",
		LabelUpgrade:          "பரிமாற்றம்",
		LabelAvailableCredits: "கிடைக்கும் கிரெடிட்கள்",
		LabelUsedCredits:      "பயன்படுத்தப்பட்ட கிரெடிட்கள்",
		LabelUpgradeHint:      "மேலும் பாடங்களுக்கு உங்கள் திட்டத்தை மேம்படுத்தவும்",
		LabelLanguage:         "மொழி தேர்ந்தெடுக்கவும்",
	},
	language.Malayalam: {
		LabelLogoTitle:        "ഡാഷ്ബോർഡ്",
		LabelCreateNew:        "പുതിയതായി സൃഷ്‌ടിക്കുക",
		LabelDashboard:        "ഡാഷ്ബോർഡ്",
		LabelUpgrade:          "അപ്ഗ്രേഡ്",
		LabelAvailableCredits: "ലഭിക്കുന്ന ക്രെഡിറ്റുകൾ",
		LabelUsedCredits:      "ഉപയോഗിച്ച ക്രെഡിറ്റുകൾ",
		LabelUpgradeHint:      "കൂടുതൽ കോഴ്‌സുകൾക്കായി നിങ്ങളുടെ പ്ലാൻ അപ്ഗ്രേഡ് ചെയ്യുക",
		LabelLanguage:         "ഭാഷ തിരഞ്ഞെടുക്കുക",
	},
}

func init() {
	for tag, messages := range dictionary {
		for key, msg := range messages {
			message.SetString(tag, key, msg)
		}
	}
}

// Labels returns every sidebar label for code. Keys missing in a language fall back to English.
func Labels(code model.LanguageCode) map[string]string {
	p := Printer(code)
	english := dictionary[language.English]
	out := make(map[string]string, len(labelKeys))
	for _, key := range labelKeys {
		if _, ok := dictionary[Tag(code)][key]; ok {
			out[key] = p.Sprintf(key)
			continue
		}
		out[key] = english[key]
	}
	return out
}
