// Package i18n holds the user-facing strings of the gallery and picks a
// catalog for a language preference.
package i18n

import (
	"golang.org/x/text/language"
)

// Labels is the set of strings the gallery renders.
type Labels struct {
	Tag language.Tag

	Save     string
	Saving   string
	Create   string
	Creating string

	PlaceholderName  string
	PlaceholderAbout string

	EditProfile   string
	NewPlace      string
	UpdateAvatar  string
	NameField     string
	AboutField    string
	PlaceField    string
	LinkField     string
	AvatarField   string
	Close         string
	Delete        string
	Like          string
	EmptyGallery  string
	ActionFailed  string
	InvalidFields string
}

var english = Labels{
	Tag:              language.English,
	Save:             "Save",
	Saving:           "Saving...",
	Create:           "Create",
	Creating:         "Creating...",
	PlaceholderName:  "Jacques Cousteau",
	PlaceholderAbout: "Sailor, researcher",
	EditProfile:      "Edit profile",
	NewPlace:         "New place",
	UpdateAvatar:     "Update avatar",
	NameField:        "Name",
	AboutField:       "About",
	PlaceField:       "Title",
	LinkField:        "Image link",
	AvatarField:      "Avatar link",
	Close:            "Close",
	Delete:           "Delete",
	Like:             "Like",
	EmptyGallery:     "No places yet.",
	ActionFailed:     "The request failed, please try again.",
	InvalidFields:    "Please check the highlighted fields.",
}

var russian = Labels{
	Tag:              language.Russian,
	Save:             "Сохранить",
	Saving:           "Сохранение...",
	Create:           "Создать",
	Creating:         "Создание...",
	PlaceholderName:  "Жак-Ив Кусто",
	PlaceholderAbout: "Исследователь океана",
	EditProfile:      "Редактировать профиль",
	NewPlace:         "Новое место",
	UpdateAvatar:     "Обновить аватар",
	NameField:        "Имя",
	AboutField:       "Занятие",
	PlaceField:       "Название",
	LinkField:        "Ссылка на картинку",
	AvatarField:      "Ссылка на аватар",
	Close:            "Закрыть",
	Delete:           "Удалить",
	Like:             "Нравится",
	EmptyGallery:     "Здесь пока нет мест.",
	ActionFailed:     "Не удалось выполнить запрос, попробуйте ещё раз.",
	InvalidFields:    "Проверьте заполнение полей.",
}

var catalogs = []Labels{english, russian}

var matcher = language.NewMatcher([]language.Tag{english.Tag, russian.Tag})

// Default returns the English catalog.
func Default() Labels {
	return english
}

// Match returns the catalog closest to pref, which may be a single tag
// ("ru") or an Accept-Language header ("ru-RU,ru;q=0.9,en;q=0.8").
// Unparseable or unsupported preferences fall back to English.
func Match(pref string) Labels {
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return english
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return english
	}
	return catalogs[index]
}
