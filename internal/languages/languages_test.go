package languages

import "testing"

func TestDefaultIsFirstEntry(t *testing.T) {
	def := Default()
	if def.Code != "en" {
		t.Fatalf("default code = %s, want en", def.Code)
	}
	if Supported()[0] != def {
		t.Fatal("default must be the first catalog entry")
	}
}

func TestIsSupported(t *testing.T) {
	for _, code := range []string{"en", "es", "fr", "de", "it", "pt", "pl", "hi"} {
		if !IsSupported(code) {
			t.Fatalf("%s should be supported", code)
		}
	}
	if IsSupported("xx") {
		t.Fatal("xx should not be supported")
	}
	if IsSupported("") {
		t.Fatal("empty code should not be supported")
	}
}

func TestSupportedReturnsCopy(t *testing.T) {
	langs := Supported()
	langs[0] = Language{Code: "zz", Name: "Mutated"}
	if !IsSupported("en") || IsSupported("zz") {
		t.Fatal("mutating the returned slice must not affect the catalog")
	}
}
