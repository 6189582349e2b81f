// filename.go — детерминированное имя выходного файла из метки экспорта.
package export

import (
	"regexp"
	"strings"
)

// filenameSuffix — суффикс имени выходного файла.
const filenameSuffix = "_assets.csv"

// nonAlphanumeric — последовательности символов, не являющихся
// ASCII-буквами или цифрами.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// DeriveFilename строит безопасное имя файла из метки экспорта:
// каждая последовательность не-алфавитно-цифровых символов заменяется
// одним подчёркиванием, результат приводится к нижнему регистру,
// добавляется суффикс _assets.csv.
//
// Метка без единой буквы или цифры схлопывается в пустое имя, давая
// "_assets.csv" — допустимо, но такую метку стоит логировать
// как подозрительный вход на уровне сервиса.
func DeriveFilename(label string) string {
	name := nonAlphanumeric.ReplaceAllString(label, "_")
	if name == "_" {
		name = ""
	}
	return strings.ToLower(name) + filenameSuffix
}
