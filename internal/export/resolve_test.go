package export

import (
	"encoding/json"
	"testing"

	"github.com/bigkaa/goassetstore/export-module/internal/domain/model"
)

// TestResolveValue_Nil проверяет, что отсутствующее значение даёт пустую строку.
func TestResolveValue_Nil(t *testing.T) {
	if got := ResolveValue(nil); got != "" {
		t.Errorf("ResolveValue(nil) = %q, ожидалась пустая строка", got)
	}
}

// TestResolveValue_Plain проверяет, что строковое значение возвращается без изменений.
func TestResolveValue_Plain(t *testing.T) {
	v := model.PlainValue("Хлопок, 100%")
	if got := ResolveValue(&v); got != "Хлопок, 100%" {
		t.Errorf("ResolveValue(plain) = %q", got)
	}
}

// TestResolveValue_Option проверяет, что у опции наблюдаем только display text.
func TestResolveValue_Option(t *testing.T) {
	v := model.OptionValue("x1", "Original Red")
	if got := ResolveValue(&v); got != "Original Red" {
		t.Errorf("ResolveValue(option) = %q, ожидался %q", got, "Original Red")
	}
}

// TestResolveValue_Fallback проверяет fallback-преобразование неожиданных форм.
// Ни одна форма не должна приводить к ошибке или панике.
func TestResolveValue_Fallback(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want string
	}{
		{"целое число", float64(42), "42"},
		{"дробное число", 3.14, "3.14"},
		{"булево", true, "true"},
		{"nil raw", nil, ""},
		{"объект без text", map[string]any{"id": "opt-1"}, "map[id:opt-1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := model.UnknownValue(tt.raw)
			if got := ResolveValue(&v); got != tt.want {
				t.Errorf("ResolveValue(unknown %v) = %q, ожидалось %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestResolveValue_FromJSON проверяет всю цепочку JSONB → union → строка.
func TestResolveValue_FromJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"строка", `"Silk"`, "Silk"},
		{"опция", `{"optionId":"x1","text":"Original Red"}`, "Original Red"},
		{"число", `7`, "7"},
		{"объект без text", `{"foo":"bar"}`, "map[foo:bar]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v model.MetadataValue
			if err := json.Unmarshal([]byte(tt.data), &v); err != nil {
				t.Fatalf("Unmarshal ошибка: %v", err)
			}
			if got := ResolveValue(&v); got != tt.want {
				t.Errorf("ResolveValue(%s) = %q, ожидалось %q", tt.data, got, tt.want)
			}
		})
	}
}
