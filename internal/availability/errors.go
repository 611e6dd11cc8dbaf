package availability

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена.
	// Жесткая ошибка - без услуги диагностика невозможна.
	ErrServiceNotFound = errors.New("availability: service not found")

	// ErrEmployeeNotFound возвращается, когда указанный сотрудник не существует.
	// Структурно некорректный запрос, а не "сотрудник занят".
	ErrEmployeeNotFound = errors.New("availability: employee not found")

	// ErrEmployeeInactive возвращается, когда сотрудник уволен или деактивирован
	ErrEmployeeInactive = errors.New("availability: employee is not active")

	// ErrInternal возвращается, когда проверку не удалось выполнить.
	// Никогда не схлопывается в "недоступно" - операционная ошибка
	// должна быть видна, а не маскироваться под занятый слот.
	ErrInternal = errors.New("availability: internal error")
)
