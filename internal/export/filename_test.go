package export

import "testing"

// TestDeriveFilename проверяет нормализацию метки экспорта в имя файла.
func TestDeriveFilename(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"обычная метка", "Brand Library", "brand_library_assets.csv"},
		{"спецсимволы схлопываются", "Q4 Partner Assets!", "q4_partner_assets__assets.csv"},
		{"несколько разделителей подряд", "a  -  b", "a_b_assets.csv"},
		{"кириллица не алфавитно-цифровая", "Отчёт 2025", "_2025_assets.csv"},
		{"только спецсимволы", "!!!", "_assets.csv"},
		{"пустая метка", "", "_assets.csv"},
		{"уже безопасная", "export2025", "export2025_assets.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveFilename(tt.label); got != tt.want {
				t.Errorf("DeriveFilename(%q) = %q, ожидалось %q", tt.label, got, tt.want)
			}
		})
	}
}
