package validation

import (
	"strings"
	"testing"

	"hackhub/internal/models"
)

func TestStruct_JobSearchRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.JobSearchRequest
		wantErr string
	}{
		{"valid", models.JobSearchRequest{Query: "go", Page: 1, ResultsPerPage: 10}, ""},
		{"missing query", models.JobSearchRequest{Page: 1, ResultsPerPage: 10}, "query is required"},
		{"page zero", models.JobSearchRequest{Query: "go", Page: 0, ResultsPerPage: 10}, "page must be greater than or equal to 1"},
		{"negative size", models.JobSearchRequest{Query: "go", Page: 1, ResultsPerPage: -1}, "resultsPerPage must be greater than or equal to 1"},
		{"long location", models.JobSearchRequest{Query: "go", Location: strings.Repeat("x", 201), Page: 1, ResultsPerPage: 1}, "location must be at most 200 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Struct() error = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Struct() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestStruct_LanguageDetectionRequest(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{"valid", "hello", ""},
		{"empty", "", "text cannot be empty"},
		{"whitespace only", "  \t\n", "text cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&models.LanguageDetectionRequest{Text: tt.text})
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Struct() error = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Struct() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestStruct_Producto(t *testing.T) {
	tests := []struct {
		name    string
		p       models.Producto
		wantErr string
	}{
		{"valid", models.Producto{Nombre: "Mouse", Precio: 10.5, Stock: 0}, ""},
		{"blank nombre", models.Producto{Nombre: " ", Precio: 1}, "nombre cannot be empty"},
		{"long nombre", models.Producto{Nombre: strings.Repeat("a", 101), Precio: 1}, "nombre must be at most 100 characters"},
		{"long descripcion", models.Producto{Nombre: "a", Descripcion: strings.Repeat("d", 501), Precio: 1}, "descripcion must be at most 500 characters"},
		{"zero precio", models.Producto{Nombre: "a", Precio: 0}, "precio must be greater than 0"},
		{"negative stock", models.Producto{Nombre: "a", Precio: 1, Stock: -1}, "stock must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.p)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Struct() error = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Struct() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
