// Package i18n resolves user-facing notification messages. Every failure the
// API surfaces maps to one short message here; handlers never hand raw error
// strings to clients.
package i18n

import (
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English,    // default
	language.Indonesian,
}

var matcher = language.NewMatcher(supported)

var messages = map[string]map[string]string{
	"en": {
		"document_limit_exceeded": "Document limit reached. Upgrade to upload more documents.",
		"storage_limit_exceeded":  "Storage limit reached. Upgrade for more space.",
		"deletion_not_permitted":  "Document deletion requires Pro or Ultra Pro subscription.",
		"feature_not_available":   "This feature requires a paid subscription.",
		"invalid_progress":        "Reading progress must be between 0 and 100.",
		"store_unavailable":       "The document store is unavailable. Please try again.",
		"unknown_plan":            "Unknown subscription plan.",
		"auth_failed":             "Invalid email or password.",
		"email_taken":             "An account with this email already exists.",
		"not_found":               "Not found.",
		"unauthorized":            "Please sign in to continue.",
		"bad_request":             "Invalid request.",
		"internal":                "Something went wrong. Please try again.",
	},
	"id": {
		"document_limit_exceeded": "Batas dokumen tercapai. Tingkatkan paket untuk mengunggah lebih banyak.",
		"storage_limit_exceeded":  "Batas penyimpanan tercapai. Tingkatkan paket untuk ruang lebih.",
		"deletion_not_permitted":  "Penghapusan dokumen memerlukan langganan Pro atau Ultra Pro.",
		"feature_not_available":   "Fitur ini memerlukan langganan berbayar.",
		"invalid_progress":        "Kemajuan membaca harus antara 0 dan 100.",
		"store_unavailable":       "Penyimpanan dokumen tidak tersedia. Silakan coba lagi.",
		"unknown_plan":            "Paket langganan tidak dikenal.",
		"auth_failed":             "Email atau kata sandi salah.",
		"email_taken":             "Akun dengan email ini sudah ada.",
		"not_found":               "Tidak ditemukan.",
		"unauthorized":            "Silakan masuk untuk melanjutkan.",
		"bad_request":             "Permintaan tidak valid.",
		"internal":                "Terjadi kesalahan. Silakan coba lagi.",
	},
}

// Message returns the localized text for a message code. Unknown locales fall
// back to English through the language matcher; unknown codes return the code
// itself so a missing entry is visible rather than silent.
func Message(locale, code string) string {
	tag, _ := language.MatchStrings(matcher, locale)
	base, _ := tag.Base()
	catalog, ok := messages[base.String()]
	if !ok {
		catalog = messages["en"]
	}
	if msg, ok := catalog[code]; ok {
		return msg
	}
	if msg, ok := messages["en"][code]; ok {
		return msg
	}
	return code
}
