package apperrors

import (
	"errors"
	"fmt"
)

// Классы ошибок ядра. Хэндлер сопоставляет их с HTTP-кодами,
// сервисы оборачивают через %w, сохраняя класс для errors.As/Is.

// NotFoundError - запрошенная сущность отсутствует
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Entity, e.ID)
}

// NewNotFound создает ошибку отсутствия сущности
func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError - нарушение ограничения уникальности
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NewConflict создает ошибку конфликта
func NewConflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}

// InvalidTransitionError - переход запрошен из недопустимого статуса.
// Текущий статус включается в сообщение, чтобы вызывающая сторона
// могла принять решение без повторного чтения состояния.
type InvalidTransitionError struct {
	Action   string
	Current  string
	Required string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s assignment in status %q, required status %q", e.Action, e.Current, e.Required)
}

// NewInvalidTransition создает ошибку недопустимого перехода
func NewInvalidTransition(action, current, required string) *InvalidTransitionError {
	return &InvalidTransitionError{Action: action, Current: current, Required: required}
}

// UnauthorizedError - у действующего пользователя нет прав на операцию
type UnauthorizedError struct {
	Reason string
}

func (e *UnauthorizedError) Error() string {
	return e.Reason
}

// NewUnauthorized создает ошибку авторизации
func NewUnauthorized(reason string) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason}
}

// InvalidInputError - некорректные входные данные (координаты вне диапазона,
// отсутствующие обязательные поля)
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

// NewInvalidInput создает ошибку входных данных
func NewInvalidInput(message string) *InvalidInputError {
	return &InvalidInputError{Message: message}
}

// IsNotFound проверяет, относится ли ошибка к классу NotFound
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsConflict проверяет, относится ли ошибка к классу Conflict
func IsConflict(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// IsInvalidTransition проверяет, относится ли ошибка к классу InvalidTransition
func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}

// IsUnauthorized проверяет, относится ли ошибка к классу Unauthorized
func IsUnauthorized(err error) bool {
	var target *UnauthorizedError
	return errors.As(err, &target)
}

// IsInvalidInput проверяет, относится ли ошибка к классу InvalidInput
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}
