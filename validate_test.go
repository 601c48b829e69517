package main

import "testing"

func TestNormalizeAndValidate(t *testing.T) {
	in := TaxpayerInput{Cedula: " 87063020 ", Nombres: " luis hernando ", Celular: " 3167945111 "}
	if err := normalizeAndValidate(&in); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if in.Nombres != "LUIS HERNANDO" {
		t.Fatalf("nombres should be trimmed and upper-cased, got %q", in.Nombres)
	}
	if in.Cedula != "87063020" || in.Celular != "3167945111" {
		t.Fatalf("fields should be trimmed: %+v", in)
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name string
		in   TaxpayerInput
	}{
		{"short cedula", TaxpayerInput{Cedula: "12345", Nombres: "MARIA LOPEZ", Celular: "3001234567"}},
		{"non-digit cedula", TaxpayerInput{Cedula: "87A63020", Nombres: "MARIA LOPEZ", Celular: "3001234567"}},
		{"short nombres", TaxpayerInput{Cedula: "87063020", Nombres: "ab", Celular: "3001234567"}},
		{"celular wrong prefix", TaxpayerInput{Cedula: "87063020", Nombres: "MARIA LOPEZ", Celular: "4001234567"}},
		{"celular too short", TaxpayerInput{Cedula: "87063020", Nombres: "MARIA LOPEZ", Celular: "300123456"}},
		{"celular too long", TaxpayerInput{Cedula: "87063020", Nombres: "MARIA LOPEZ", Celular: "30012345678"}},
	}
	for _, c := range cases {
		in := c.in
		err := normalizeAndValidate(&in)
		if err == nil {
			t.Fatalf("%s: expected validation error", c.name)
		}
		if _, ok := err.(*ValidationError); !ok {
			t.Fatalf("%s: expected *ValidationError, got %T", c.name, err)
		}
	}
}
