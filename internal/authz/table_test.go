package authz

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_IsAllowed(t *testing.T) {
	table := NewTable([]Rule{
		{Method: http.MethodPost, Route: "/api/v1/reservations",
			Roles: []Role{RoleCustomer, RoleManager}},
		{Method: http.MethodGet, Route: "/api/v1/customers/{customerId}/reservations",
			Roles: []Role{RoleManager, RoleAdmin}},
	})

	assert.True(t, table.IsAllowed(http.MethodPost, "/api/v1/reservations", RoleCustomer))
	assert.True(t, table.IsAllowed(http.MethodGet, "/api/v1/customers/{customerId}/reservations", RoleAdmin))

	// Роль вне списка
	assert.False(t, table.IsAllowed(http.MethodGet, "/api/v1/customers/{customerId}/reservations", RoleCustomer))

	// Метод не из таблицы
	assert.False(t, table.IsAllowed(http.MethodDelete, "/api/v1/reservations", RoleAdmin))
}

func TestTable_UnknownRouteIsDenied(t *testing.T) {
	table := NewTable(nil)

	assert.False(t, table.IsAllowed(http.MethodGet, "/api/v1/anything", RoleAdmin))
}
