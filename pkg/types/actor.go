package types

import "card-system/pkg/constants"

// Actor — неизменяемый слепок аутентифицированного сотрудника.
// Разрешается заново из БД на каждый запрос, чтобы смена роли или
// деактивация вступали в силу немедленно, а не по истечении сессии.
type Actor struct {
	ID       uint64
	RoleCode constants.RoleCode
}

func (a Actor) IsAdmin() bool {
	return a.RoleCode == constants.RoleAdmin
}
