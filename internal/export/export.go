// Пакет export — преобразование записей реестра ассетов в табличное
// CSV-представление. Чистая трансформация без I/O: на входе срез
// model.AssetRecord, на выходе байты CSV и имя файла.
//
// Конвейер: BuildRow для каждого ассета → BuildColumnSchema по всем
// строкам → Serialize → DeriveFilename.
//
// Схема колонок динамическая: базовые колонки фиксированы, колонки
// пользовательских метаданных выводятся из самой выборки. Два экспорта
// разных подмножеств одной библиотеки могут дать разные наборы колонок —
// это ожидаемое поведение, глобального каталога свойств нет.
package export

import "errors"

// ErrNoData — экспорт без единой строки.
// Пустой или header-only файл не генерируется — вызывающая сторона
// обязана получить явную ошибку.
var ErrNoData = errors.New("нет данных для экспорта")

// Имена базовых колонок. Присутствуют в каждой строке экспорта
// независимо от заполненности полей ассета.
const (
	ColID              = "id"
	ColTitle           = "title"
	ColDescription     = "description"
	ColStatus          = "status"
	ColCreatedAt       = "createdAt"
	ColModifiedAt      = "modifiedAt"
	ColExpiresAt       = "expiresAt"
	ColCopyrightStatus = "copyrightStatus"
	ColCopyrightNotice = "copyrightNotice"
	ColPreviewURL      = "previewUrl"
	ColDownloadURL     = "downloadUrl"
	ColAlternativeText = "alternativeText"
	ColDuration        = "duration"
	ColTags            = "tags"
	ColLicenses        = "licenses"
)

// BaseColumns возвращает базовые колонки в порядке следования в CSV.
func BaseColumns() []string {
	return []string{
		ColID, ColTitle, ColDescription, ColStatus,
		ColCreatedAt, ColModifiedAt, ColExpiresAt,
		ColCopyrightStatus, ColCopyrightNotice,
		ColPreviewURL, ColDownloadURL, ColAlternativeText,
		ColDuration, ColTags, ColLicenses,
	}
}
