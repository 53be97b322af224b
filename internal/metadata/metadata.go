// Package metadata предоставляет функционал для чтения тегов исполнителя и названия из аудиофайлов
package metadata

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"

	"github.com/hazadus/go-shuffler/internal/source"
)

// Tags хранит теги трека для отображения. Идентификатором трека остается имя файла
type Tags struct {
	Artist string
	Title  string
	Album  string
}

// String возвращает строку вида "Исполнитель - Название", как в именах файлов
func (t Tags) String() string {
	switch {
	case t.Artist != "" && t.Title != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return t.Artist
	}
}

// Read читает теги из файла. Если тегов нет, они выводятся из имени файла
func Read(h source.Handle) Tags {
	fallback := FromName(h.Name())

	rc, err := h.Open()
	if err != nil {
		return fallback
	}
	defer rc.Close()

	rs, ok := rc.(io.ReadSeeker)
	if !ok {
		return fallback
	}

	m, err := tag.ReadFrom(rs)
	if err != nil {
		return fallback
	}

	tags := Tags{
		Artist: strings.TrimSpace(m.Artist()),
		Title:  strings.TrimSpace(m.Title()),
		Album:  strings.TrimSpace(m.Album()),
	}
	if tags.Title == "" {
		tags.Title = fallback.Title
		if tags.Artist == "" {
			tags.Artist = fallback.Artist
		}
	}
	return tags
}

// FromName разбирает имя файла в формате "Исполнитель - Название"
func FromName(name string) Tags {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	parts := strings.Split(base, " - ")
	if len(parts) >= 2 {
		return Tags{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(strings.Join(parts[1:], " - ")),
		}
	}

	return Tags{Title: base}
}
