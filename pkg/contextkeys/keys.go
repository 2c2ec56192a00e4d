package contextkeys

type contextKey string

const (
	// ActorKey хранит types.Actor — неизменяемый слепок сотрудника,
	// заново разрешённый из БД на каждый запрос.
	ActorKey contextKey = "Actor"
)
