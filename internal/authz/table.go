// Package authz holds the endpoint permission table: an immutable value
// built once at startup and passed by reference to the authorization
// middleware. No package-level state, no mutation after construction.
package authz

// Role роль вызывающего из заголовка X-User-Role
type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

type ruleKey struct {
	method string
	route  string
}

// Rule разрешение: (метод, шаблон маршрута) -> роли
type Rule struct {
	Method string
	Route  string
	Roles  []Role
}

// Table неизменяемая таблица разрешений
type Table struct {
	allowed map[ruleKey]map[Role]struct{}
}

// NewTable строит таблицу из списка правил. После построения таблица
// не изменяется.
func NewTable(rules []Rule) *Table {
	allowed := make(map[ruleKey]map[Role]struct{}, len(rules))

	for _, rule := range rules {
		key := ruleKey{method: rule.Method, route: rule.Route}
		roles := make(map[Role]struct{}, len(rule.Roles))
		for _, role := range rule.Roles {
			roles[role] = struct{}{}
		}
		allowed[key] = roles
	}

	return &Table{allowed: allowed}
}

// IsAllowed возвращает true, если роль допущена к (метод, маршрут).
// Неизвестная пара (метод, маршрут) запрещена по умолчанию.
func (t *Table) IsAllowed(method, route string, role Role) bool {
	roles, ok := t.allowed[ruleKey{method: method, route: route}]
	if !ok {
		return false
	}
	_, ok = roles[role]
	return ok
}
