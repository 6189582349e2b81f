// resolve.go — нормализация одного значения метаданных в строку.
package export

import (
	"fmt"
	"strconv"

	"github.com/bigkaa/goassetstore/export-module/internal/domain/model"
)

// ResolveValue нормализует значение пользовательских метаданных
// в отображаемую строку. Никогда не возвращает ошибку: дрейф схемы
// метаданных между библиотеками не должен ронять экспорт.
//
//   - nil → пустая строка
//   - plain → строка без изменений
//   - option с непустым text → text
//   - любая другая форма → строковое представление как есть
func ResolveValue(v *model.MetadataValue) string {
	if v == nil {
		return ""
	}

	switch v.Kind {
	case model.ValueKindPlain:
		return v.Text
	case model.ValueKindOption:
		if v.Text != "" {
			return v.Text
		}
		return stringifyRaw(v.Raw)
	default:
		return stringifyRaw(v.Raw)
	}
}

// stringifyRaw — fallback-преобразование произвольного декодированного
// JSON-значения в строку.
func stringifyRaw(raw any) string {
	switch val := raw.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		// JSON-числа декодируются в float64; целые выводим без дробной части
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}
