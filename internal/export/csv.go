// csv.go — сериализация строк экспорта в CSV (подмножество RFC 4180).
package export

import "strings"

// Serialize сериализует строки в CSV-текст по заданной схеме колонок.
// Первая строка — заголовок, далее по одной строке на ассет в порядке
// входа. Строки разделяются \n, завершающего перевода строки нет.
// Отсутствующая в строке колонка даёт пустую ячейку.
//
// Возвращает ErrNoData при пустом срезе строк: вызывающая сторона
// обязана отбраковывать пустые выборки раньше, но инвариант
// перепроверяется и здесь.
func Serialize(rows []*Row, columns []string) ([]byte, error) {
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	var b strings.Builder

	writeLine(&b, columns, func(col string) string { return col })
	for _, row := range rows {
		b.WriteByte('\n')
		writeLine(&b, columns, func(col string) string {
			v, _ := row.Get(col)
			return v
		})
	}

	return []byte(b.String()), nil
}

// writeLine записывает одну CSV-строку: ячейки через запятую,
// каждая ячейка проходит экранирование.
func writeLine(b *strings.Builder, columns []string, cell func(string) string) {
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCell(cell(col)))
	}
}

// escapeCell экранирует ячейку по RFC 4180: значение оборачивается
// в двойные кавычки с удвоением внутренних кавычек тогда и только
// тогда, когда содержит запятую, кавычку или перевод строки.
// Правило применяется и к ячейкам заголовка.
func escapeCell(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
