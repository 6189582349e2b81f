// Пакет model — доменные модели Export Module.
// AssetRecord — маппинг таблицы asset_registry.
package model

import "time"

// Статусы ассета в реестре.
const (
	// StatusActive — ассет доступен для экспорта.
	StatusActive = "active"
	// StatusDeleted — ассет помечен как удалённый (soft delete).
	StatusDeleted = "deleted"
	// StatusExpired — срок хранения ассета истёк.
	StatusExpired = "expired"
)

// AssetRecord — запись ассета в реестре asset_registry.
// Все поля кроме AssetID опциональны: реестр хранит ассеты из разных
// библиотек, и наборы заполненных полей у них отличаются.
type AssetRecord struct {
	// AssetID — UUID ассета
	AssetID string `json:"asset_id"`
	// Title — название ассета
	Title string `json:"title"`
	// Description — описание ассета
	Description string `json:"description"`
	// Status — статус: active, deleted, expired
	Status string `json:"status"`
	// CreatedAt — время создания ассета в исходной библиотеке
	CreatedAt *time.Time `json:"created_at,omitempty"`
	// ModifiedAt — время последнего изменения
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
	// ExpiresAt — время истечения срока хранения
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	// Copyright — информация об авторских правах
	Copyright *Copyright `json:"copyright,omitempty"`
	// Tags — упорядоченный список тегов
	Tags []Tag `json:"tags,omitempty"`
	// Licenses — упорядоченный список лицензий
	Licenses []License `json:"licenses,omitempty"`
	// PreviewURL — URL превью
	PreviewURL string `json:"preview_url,omitempty"`
	// DownloadURL — URL скачивания оригинала
	DownloadURL string `json:"download_url,omitempty"`
	// AlternativeText — альтернативный текст (accessibility)
	AlternativeText string `json:"alternative_text,omitempty"`
	// Duration — длительность в секундах (для видео/аудио)
	Duration *float64 `json:"duration,omitempty"`
	// CustomMetadata — упорядоченный список пользовательских метаданных
	CustomMetadata []CustomMetadataEntry `json:"custom_metadata,omitempty"`
	// CreatedBy — идентификатор зарегистрировавшего (sub из JWT)
	CreatedBy string `json:"created_by,omitempty"`
	// RegisteredAt — время создания записи в реестре
	RegisteredAt time.Time `json:"registered_at"`
	// UpdatedAt — время последнего обновления записи
	UpdatedAt time.Time `json:"updated_at"`
}

// Copyright — статус и текст уведомления об авторских правах.
type Copyright struct {
	// Status — статус (например, copyrighted, public-domain)
	Status string `json:"status,omitempty"`
	// Notice — текст уведомления
	Notice string `json:"notice,omitempty"`
}

// Tag — тег ассета.
type Tag struct {
	// Value — значение тега
	Value string `json:"value"`
	// Source — источник тега (upload, manual, ai)
	Source string `json:"source,omitempty"`
}

// License — лицензия, привязанная к ассету.
type License struct {
	// LicenseID — идентификатор лицензии в исходной библиотеке
	LicenseID string `json:"id,omitempty"`
	// Title — название лицензии
	Title string `json:"title"`
}

// CustomProperty — описание пользовательского свойства.
// Name используется как заголовок колонки при экспорте.
type CustomProperty struct {
	// PropertyID — идентификатор свойства
	PropertyID string `json:"id,omitempty"`
	// Name — имя свойства (заголовок колонки CSV)
	Name string `json:"name"`
}

// CustomMetadataEntry — одно пользовательское свойство ассета.
// Несёт либо одиночное значение (Value), либо список значений (Values).
// Запись без значения и без непустого списка колонку значением не наполняет.
type CustomMetadataEntry struct {
	// Property — описание свойства
	Property CustomProperty `json:"property"`
	// Value — одиночное значение (nil, если значение не задано)
	Value *MetadataValue `json:"value,omitempty"`
	// Values — список значений (nil или пустой, если список не задан)
	Values []MetadataValue `json:"values,omitempty"`
}
