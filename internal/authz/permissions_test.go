package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleLists(t *testing.T) {
	assert.ElementsMatch(t, []string{"nurse", "admin"}, OrdersCreate)
	assert.ElementsMatch(t, []string{"kitchen", "delivery", "admin"}, OrdersSetStatus)
	assert.ElementsMatch(t, []string{"delivery", "admin"}, OrdersConsumption)
	assert.ElementsMatch(t, []string{"receptionist", "admin"}, TiffinManage)
	assert.Equal(t, []string{"admin"}, AdminOnly)
	assert.Len(t, AnyStaff, 5)
}
