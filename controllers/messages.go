package controllers

import (
	"fmt"
	"time"

	"instabarakat-leads/services"
)

// Landing page (Tajik).
const (
	msgSubmitFailed   = "Хатогӣ рух дод. Лутфан дубора кӯшиш кунед."
	msgFieldsRequired = "Лутфан ҳамаи майдонҳоро пур кунед."
	msgThanksTitle    = "Ташаккур!"
	msgThanksBody     = "Мо дар наздиктарин вақт бо шумо дар тамос мешавем!"
)

// Admin (Russian).
const (
	msgWrongPassword = "Неверный пароль"
	msgLoadFailed    = "Ошибка загрузки данных из базы. Проверьте подключение к базе данных."
	msgUpdateFailed  = "Ошибка обновления статуса"
	msgUpdated       = "Статус успешно обновлен!"
	msgDeleteFailed  = "Ошибка удаления заявки"
	msgDeleted       = "Заявка успешно удалена!"
	msgConfirmDelete = "Вы уверены, что хотите удалить эту заявку?"
	msgNotFound      = "Заявка не найдена"
	msgInvalidStatus = "Недопустимый статус"
	msgEmptyStore    = "Заявки в базе данных не найдены"
	msgEmptyFiltered = "Заявки не найдены по фильтрам"
	msgExportFailed  = "Ошибка экспорта"
)

var filterWarningMessages = map[string]string{
	services.FilterFieldStartDate: "Неверная начальная дата",
	services.FilterFieldEndDate:   "Неверная конечная дата",
	services.FilterFieldStatus:    "Неизвестный статус",
}

// localizeWarnings renders dropped filter inputs for the admin.
func localizeWarnings(warnings []services.FilterWarning) []string {
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		msg, ok := filterWarningMessages[w.Field]
		if !ok {
			msg = "Неверный фильтр"
		}
		out = append(out, fmt.Sprintf("%s: %q", msg, w.Value))
	}
	return out
}

// Loading delays shown before navigating; purely cosmetic.
const (
	GateRedirectDelay  = time.Second
	SubmitConfirmDelay = 2 * time.Second
)

var flashMessages = map[string]string{
	"updated": msgUpdated,
	"deleted": msgDeleted,
}
