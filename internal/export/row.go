// row.go — построение строки экспорта и объединённой схемы колонок.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/bigkaa/goassetstore/export-module/internal/domain/model"
)

// Разделители значений внутри одной ячейки.
// Метаданные могут содержать запятые, поэтому списки значений
// пользовательских свойств разделяются точкой с запятой.
const (
	tagSeparator   = ", "
	valueSeparator = "; "
)

// Row — строка экспорта: отображение имени колонки в строковое значение
// с сохранением порядка вставки ключей. Порядок колонок — наблюдаемый
// контракт заголовка CSV, обычный map не подходит.
type Row struct {
	columns []string
	values  map[string]string
}

// NewRow создаёт пустую строку экспорта.
func NewRow() *Row {
	return &Row{values: make(map[string]string)}
}

// Set устанавливает значение колонки. Новая колонка регистрируется
// в конце, повторная установка перезаписывает значение, сохраняя
// исходную позицию колонки.
func (r *Row) Set(name, value string) {
	if _, ok := r.values[name]; !ok {
		r.columns = append(r.columns, name)
	}
	r.values[name] = value
}

// Get возвращает значение колонки и признак её наличия в строке.
func (r *Row) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Columns возвращает колонки строки в порядке регистрации.
func (r *Row) Columns() []string {
	return r.columns
}

// Len возвращает количество колонок строки.
func (r *Row) Len() int {
	return len(r.columns)
}

// BuildRow строит строку экспорта из записи ассета.
// Отсутствующие опциональные поля дают пустые ячейки, ошибок нет.
func BuildRow(a *model.AssetRecord) *Row {
	row := NewRow()

	row.Set(ColID, a.AssetID)
	row.Set(ColTitle, a.Title)
	row.Set(ColDescription, a.Description)
	row.Set(ColStatus, a.Status)
	row.Set(ColCreatedAt, formatTime(a.CreatedAt))
	row.Set(ColModifiedAt, formatTime(a.ModifiedAt))
	row.Set(ColExpiresAt, formatTime(a.ExpiresAt))

	if a.Copyright != nil {
		row.Set(ColCopyrightStatus, a.Copyright.Status)
		row.Set(ColCopyrightNotice, a.Copyright.Notice)
	} else {
		row.Set(ColCopyrightStatus, "")
		row.Set(ColCopyrightNotice, "")
	}

	row.Set(ColPreviewURL, a.PreviewURL)
	row.Set(ColDownloadURL, a.DownloadURL)
	row.Set(ColAlternativeText, a.AlternativeText)
	row.Set(ColDuration, formatDuration(a.Duration))
	row.Set(ColTags, joinTags(a.Tags))
	row.Set(ColLicenses, joinLicenses(a.Licenses))

	for _, entry := range a.CustomMetadata {
		name := entry.Property.Name
		if name == "" {
			// Без имени свойства колонку создать нельзя
			continue
		}

		switch {
		case entry.Value != nil:
			row.Set(name, ResolveValue(entry.Value))
		case len(entry.Values) > 0:
			resolved := make([]string, len(entry.Values))
			for i := range entry.Values {
				resolved[i] = ResolveValue(&entry.Values[i])
			}
			row.Set(name, strings.Join(resolved, valueSeparator))
		default:
			// Пустое свойство всё равно регистрирует колонку:
			// другие ассеты выборки могут иметь это свойство заполненным,
			// а объединённая схема собирается по ключам строк.
			row.Set(name, "")
		}
	}

	return row
}

// BuildColumnSchema собирает объединённую схему колонок по всем строкам.
// Порядок — первое появление при сканировании строк по порядку входа
// и ключей каждой строки в порядке их регистрации. Без сортировки:
// порядок обнаружения и есть порядок заголовка.
func BuildColumnSchema(rows []*Row) []string {
	var schema []string
	seen := make(map[string]struct{})

	for _, row := range rows {
		for _, col := range row.Columns() {
			if _, ok := seen[col]; ok {
				continue
			}
			seen[col] = struct{}{}
			schema = append(schema, col)
		}
	}

	return schema
}

// formatTime форматирует опциональную метку времени (RFC3339, UTC).
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// formatDuration форматирует длительность в секундах.
func formatDuration(d *float64) string {
	if d == nil {
		return ""
	}
	return strconv.FormatFloat(*d, 'f', -1, 64)
}

// joinTags объединяет значения тегов в одну ячейку.
func joinTags(tags []model.Tag) string {
	if len(tags) == 0 {
		return ""
	}
	values := make([]string, len(tags))
	for i, t := range tags {
		values[i] = t.Value
	}
	return strings.Join(values, tagSeparator)
}

// joinLicenses объединяет названия лицензий в одну ячейку.
func joinLicenses(licenses []model.License) string {
	if len(licenses) == 0 {
		return ""
	}
	titles := make([]string, len(licenses))
	for i, l := range licenses {
		titles[i] = l.Title
	}
	return strings.Join(titles, tagSeparator)
}
