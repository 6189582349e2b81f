package export

import (
	"reflect"
	"testing"
	"time"

	"github.com/bigkaa/goassetstore/export-module/internal/domain/model"
)

// plainPtr — одиночное plain-значение для фикстур.
func plainPtr(s string) *model.MetadataValue {
	v := model.PlainValue(s)
	return &v
}

// TestBuildRow_BaseColumns проверяет, что пустой ассет даёт все базовые
// колонки с пустыми значениями (кроме id).
func TestBuildRow_BaseColumns(t *testing.T) {
	row := BuildRow(&model.AssetRecord{AssetID: "a-1"})

	if !reflect.DeepEqual(row.Columns(), BaseColumns()) {
		t.Errorf("Columns = %v, ожидались базовые колонки", row.Columns())
	}

	if got, _ := row.Get(ColID); got != "a-1" {
		t.Errorf("id = %q, ожидался a-1", got)
	}
	for _, col := range BaseColumns()[1:] {
		if got, _ := row.Get(col); got != "" {
			t.Errorf("колонка %s = %q, ожидалась пустая строка", col, got)
		}
	}
}

// TestBuildRow_FilledFields проверяет заполнение базовых колонок.
func TestBuildRow_FilledFields(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	duration := 12.5

	row := BuildRow(&model.AssetRecord{
		AssetID:     "a-2",
		Title:       "Весенний каталог",
		Status:      model.StatusActive,
		CreatedAt:   &created,
		Copyright:   &model.Copyright{Status: "copyrighted", Notice: "© Acme"},
		Duration:    &duration,
		PreviewURL:  "https://cdn.example.com/p/a-2",
		DownloadURL: "https://cdn.example.com/d/a-2",
		Tags: []model.Tag{
			{Value: "spring", Source: "upload"},
			{Value: "catalog", Source: "manual"},
		},
		Licenses: []model.License{
			{LicenseID: "l-1", Title: "Internal Use"},
			{LicenseID: "l-2", Title: "Web Only"},
		},
	})

	want := map[string]string{
		ColTitle:           "Весенний каталог",
		ColStatus:          "active",
		ColCreatedAt:       "2025-03-01T10:30:00Z",
		ColCopyrightStatus: "copyrighted",
		ColCopyrightNotice: "© Acme",
		ColDuration:        "12.5",
		ColTags:            "spring, catalog",
		ColLicenses:        "Internal Use, Web Only",
	}
	for col, expected := range want {
		if got, _ := row.Get(col); got != expected {
			t.Errorf("колонка %s = %q, ожидалось %q", col, got, expected)
		}
	}
}

// TestBuildRow_CustomMetadata проверяет динамические колонки:
// одиночное значение, список значений и разделитель "; ".
func TestBuildRow_CustomMetadata(t *testing.T) {
	row := BuildRow(&model.AssetRecord{
		AssetID: "a-3",
		CustomMetadata: []model.CustomMetadataEntry{
			{
				Property: model.CustomProperty{PropertyID: "p-1", Name: "Material"},
				Values:   []model.MetadataValue{model.PlainValue("Cotton"), model.PlainValue("Silk")},
			},
			{
				Property: model.CustomProperty{PropertyID: "p-2", Name: "Color"},
				Value:    plainPtr("Red"),
			},
		},
	})

	if got, _ := row.Get("Material"); got != "Cotton; Silk" {
		t.Errorf("Material = %q, ожидалось %q", got, "Cotton; Silk")
	}
	if got, _ := row.Get("Color"); got != "Red" {
		t.Errorf("Color = %q, ожидался Red", got)
	}

	// Динамические колонки идут после базовых в порядке появления
	cols := row.Columns()
	if cols[len(cols)-2] != "Material" || cols[len(cols)-1] != "Color" {
		t.Errorf("хвост колонок = %v, ожидались Material, Color", cols[len(BaseColumns()):])
	}
}

// TestBuildRow_EmptyEntryRegistersColumn фиксирует поведение записи
// без значения и без списка: колонка регистрируется с пустым значением,
// чтобы участвовать в объединённой схеме выборки.
func TestBuildRow_EmptyEntryRegistersColumn(t *testing.T) {
	row := BuildRow(&model.AssetRecord{
		AssetID: "a-4",
		CustomMetadata: []model.CustomMetadataEntry{
			{Property: model.CustomProperty{PropertyID: "p-9", Name: "Season"}},
		},
	})

	got, ok := row.Get("Season")
	if !ok {
		t.Fatal("колонка Season не зарегистрирована, ожидалась регистрация с пустым значением")
	}
	if got != "" {
		t.Errorf("Season = %q, ожидалась пустая строка", got)
	}
}

// TestBuildRow_NamelessPropertySkipped проверяет пропуск свойств без имени.
func TestBuildRow_NamelessPropertySkipped(t *testing.T) {
	row := BuildRow(&model.AssetRecord{
		AssetID: "a-5",
		CustomMetadata: []model.CustomMetadataEntry{
			{Property: model.CustomProperty{PropertyID: "p-0"}, Value: plainPtr("lost")},
		},
	})

	if row.Len() != len(BaseColumns()) {
		t.Errorf("Len = %d, ожидалось %d (свойство без имени не даёт колонку)", row.Len(), len(BaseColumns()))
	}
}

// TestBuildRow_DuplicatePropertyLastWins проверяет перезапись значения
// при повторе имени свойства внутри одного ассета.
func TestBuildRow_DuplicatePropertyLastWins(t *testing.T) {
	row := BuildRow(&model.AssetRecord{
		AssetID: "a-6",
		CustomMetadata: []model.CustomMetadataEntry{
			{Property: model.CustomProperty{Name: "Campaign"}, Value: plainPtr("Spring")},
			{Property: model.CustomProperty{Name: "Campaign"}, Value: plainPtr("Summer")},
		},
	})

	if got, _ := row.Get("Campaign"); got != "Summer" {
		t.Errorf("Campaign = %q, ожидался Summer (последнее значение побеждает)", got)
	}
	if row.Len() != len(BaseColumns())+1 {
		t.Errorf("Len = %d, дубликат не должен создавать вторую колонку", row.Len())
	}
}

// TestBuildColumnSchema_FirstSeenOrder проверяет порядок объединённой схемы:
// первое появление при сканировании строк по порядку.
func TestBuildColumnSchema_FirstSeenOrder(t *testing.T) {
	r1 := NewRow()
	r1.Set("id", "1")
	r1.Set("Material", "Cotton")

	r2 := NewRow()
	r2.Set("id", "2")
	r2.Set("Color", "Red")
	r2.Set("Material", "Silk")

	schema := BuildColumnSchema([]*Row{r1, r2})
	want := []string{"id", "Material", "Color"}
	if !reflect.DeepEqual(schema, want) {
		t.Errorf("schema = %v, ожидалось %v", schema, want)
	}
}

// TestBuildColumnSchema_Deterministic проверяет стабильность схемы
// при повторных вызовах на одном входе.
func TestBuildColumnSchema_Deterministic(t *testing.T) {
	rows := []*Row{
		BuildRow(&model.AssetRecord{
			AssetID: "a-1",
			CustomMetadata: []model.CustomMetadataEntry{
				{Property: model.CustomProperty{Name: "Material"}, Value: plainPtr("Cotton")},
			},
		}),
		BuildRow(&model.AssetRecord{
			AssetID: "a-2",
			CustomMetadata: []model.CustomMetadataEntry{
				{Property: model.CustomProperty{Name: "Season"}, Value: plainPtr("FW25")},
			},
		}),
	}

	first := BuildColumnSchema(rows)
	for i := 0; i < 10; i++ {
		if got := BuildColumnSchema(rows); !reflect.DeepEqual(got, first) {
			t.Fatalf("схема нестабильна: %v != %v", got, first)
		}
	}

	// Базовые колонки первой строки предшествуют динамическим,
	// колонка второй строки добавляется в конец
	if first[len(first)-2] != "Material" || first[len(first)-1] != "Season" {
		t.Errorf("хвост схемы = %v, ожидались Material, Season", first[len(BaseColumns()):])
	}
}
