// pkg/constants/constants.go
package constants

import "fmt"

//============== СТАТУСЫ ЗАЯВОК ==============

// StatusCode — типизированный код статуса заявки. В бизнес-логике сравниваем
// только коды, а не отображаемые имена: имя живёт в справочнике БД.
type StatusCode string

const (
	StatusNew      StatusCode = "NEW"
	StatusInReview StatusCode = "IN_REVIEW"
	StatusApproved StatusCode = "APPROVED"
	StatusRejected StatusCode = "REJECTED"
	// StatusIssued — терминальный статус: заявка больше не редактируется.
	StatusIssued StatusCode = "ISSUED"
)

func (c StatusCode) String() string { return string(c) }

// Каноническое соответствие код <-> отображаемое имя справочника.
var statusNames = map[StatusCode]string{
	StatusNew:      "Новая",
	StatusInReview: "На рассмотрении",
	StatusApproved: "Одобрена",
	StatusRejected: "Отклонена",
	StatusIssued:   "Выпущена",
}

func (c StatusCode) DisplayName() string {
	if name, ok := statusNames[c]; ok {
		return name
	}
	return string(c)
}

// StatusCodeFromName — обратное отображение для данных, пришедших из БД.
func StatusCodeFromName(name string) (StatusCode, error) {
	for code, n := range statusNames {
		if n == name {
			return code, nil
		}
	}
	return "", fmt.Errorf("неизвестное имя статуса: %q", name)
}

//============== РОЛИ СОТРУДНИКОВ ==============

type RoleCode string

const (
	RoleAdmin   RoleCode = "ADMIN"
	RoleManager RoleCode = "MANAGER"
)

func (c RoleCode) String() string { return string(c) }

var roleNames = map[RoleCode]string{
	RoleAdmin:   "Администратор",
	RoleManager: "Менеджер",
}

func (c RoleCode) DisplayName() string {
	if name, ok := roleNames[c]; ok {
		return name
	}
	return string(c)
}

//============== КЛЮЧИ КЕША ==============

const (
	// Ключ, указывающий, что аккаунт заблокирован из-за неудачных попыток входа.
	// Формат: lockout:<employeeID> -> "locked"
	CacheKeyLockout = "lockout:%d"

	// Ключ для подсчета неудачных попыток входа.
	// Формат: login_attempts:<employeeID> -> count
	CacheKeyLoginAttempts = "login_attempts:%d"
)
