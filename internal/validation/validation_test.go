package validation

import "testing"

func TestRemoveNonNumeric(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"123.456.789-09":  "12345678909",
		"(11) 98765-4321": "11987654321",
		"abc":             "",
		"R$ 1.234,56":     "123456",
		"١٢٣4":            "4",
	}

	for input, want := range tests {
		if got := RemoveNonNumeric(input); got != want {
			t.Fatalf("RemoveNonNumeric(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeCNPJ(t *testing.T) {
	got := NormalizeCNPJ("12.abc.345/01de-35")
	if got != "12ABC34501DE35" {
		t.Fatalf("expected 12ABC34501DE35, got %q", got)
	}
}

func TestNormalizePlate(t *testing.T) {
	if got := NormalizePlate(" abc-1d23 "); got != "ABC1D23" {
		t.Fatalf("expected ABC1D23, got %q", got)
	}
}

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"morador@condominio.com.br",
		"joao.silva+portaria@exemplo.com",
		"a@b",
		"user_name@sub-domain.example.org",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Fatalf("expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"morador",
		"morador@",
		"@condominio.com",
		"morador@-condominio.com",
		"morador@condominio-.com",
		"morador@condominio..com",
		"mora dor@condominio.com",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Fatalf("expected %q to be invalid", email)
		}
	}
}
