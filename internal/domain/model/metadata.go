// metadata.go — размеченное объединение для значений пользовательских метаданных.
// Исходные библиотеки отдают значения в разных формах: обычная строка,
// структурированная опция выпадающего списка либо произвольный JSON.
// Форма фиксируется на границе десериализации (JSONB → MetadataValue),
// дальше по коду значение обрабатывается по Kind без динамических проверок.
package model

import "encoding/json"

// ValueKind — вид значения метаданных.
type ValueKind string

const (
	// ValueKindPlain — обычная строка.
	ValueKindPlain ValueKind = "plain"
	// ValueKindOption — структурированная опция с отображаемым текстом.
	ValueKindOption ValueKind = "option"
	// ValueKindUnknown — неожиданная форма (число, объект без text и т.п.).
	ValueKindUnknown ValueKind = "unknown"
)

// MetadataValue — одно значение пользовательского свойства.
// Заполненность полей зависит от Kind:
//   - plain: Text — сама строка
//   - option: Text — отображаемый текст, OptionID — внутренний идентификатор опции
//   - unknown: Raw — декодированное значение как есть
type MetadataValue struct {
	// Kind — вид значения
	Kind ValueKind
	// Text — строковое значение или отображаемый текст опции
	Text string
	// OptionID — идентификатор опции (только для option)
	OptionID string
	// Raw — исходное значение для неожиданных форм
	Raw any
}

// PlainValue создаёт строковое значение.
func PlainValue(s string) MetadataValue {
	return MetadataValue{Kind: ValueKindPlain, Text: s}
}

// OptionValue создаёт значение-опцию.
func OptionValue(optionID, text string) MetadataValue {
	return MetadataValue{Kind: ValueKindOption, OptionID: optionID, Text: text}
}

// UnknownValue создаёт значение неожиданной формы.
func UnknownValue(raw any) MetadataValue {
	return MetadataValue{Kind: ValueKindUnknown, Raw: raw}
}

// optionJSON — JSON-представление структурированной опции.
type optionJSON struct {
	OptionID string `json:"optionId,omitempty"`
	Text     string `json:"text"`
}

// UnmarshalJSON декодирует значение из JSONB.
// Строка → plain, объект с непустым text → option, всё остальное → unknown.
func (v *MetadataValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = PlainValue(s)
		return nil
	}

	var opt optionJSON
	if err := json.Unmarshal(data, &opt); err == nil && opt.Text != "" {
		*v = OptionValue(opt.OptionID, opt.Text)
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = UnknownValue(raw)
	return nil
}

// MarshalJSON кодирует значение обратно в исходную JSON-форму.
func (v MetadataValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueKindPlain:
		return json.Marshal(v.Text)
	case ValueKindOption:
		return json.Marshal(optionJSON{OptionID: v.OptionID, Text: v.Text})
	default:
		return json.Marshal(v.Raw)
	}
}
