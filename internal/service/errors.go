package service

import "errors"

var (
	ErrUserNotFound    = errors.New("пользователь не найден")
	ErrEntryNotFound   = errors.New("запись не найдена")
	ErrInvalidEntry    = errors.New("некорректная запись")
	ErrInvalidSettings = errors.New("некорректная настройка")
	ErrNoEntries       = errors.New("за период нет записей")
	ErrAccessDenied    = errors.New("доступ запрещен")
)
