package languages

// Language is one supported translation language.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// supported is fixed at process start; the first entry is the default
// selection on the client.
var supported = []Language{
	{Code: "en", Name: "English"},
	{Code: "es", Name: "Spanish"},
	{Code: "fr", Name: "French"},
	{Code: "de", Name: "German"},
	{Code: "it", Name: "Italian"},
	{Code: "pt", Name: "Portuguese"},
	{Code: "pl", Name: "Polish"},
	{Code: "hi", Name: "Hindi"},
}

// Supported returns the full catalog in display order.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// IsSupported reports whether code is a catalog language code.
func IsSupported(code string) bool {
	for _, l := range supported {
		if l.Code == code {
			return true
		}
	}
	return false
}

// Default returns the default language (the first catalog entry).
func Default() Language {
	return supported[0]
}
