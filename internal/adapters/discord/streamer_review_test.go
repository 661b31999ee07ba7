package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApprovalGrant(t *testing.T) {
	// variante solo-tier: el de verificacion NO entra
	assert.Equal(t, []string{"tier"}, approvalGrant("tier", "", ""))
	assert.Equal(t, []string{"tier"}, approvalGrant("tier", "", "verify"))

	// variante con funcion: tier + funcion, verificacion si esta resuelta
	assert.Equal(t, []string{"tier", "func"}, approvalGrant("tier", "func", ""))
	assert.Equal(t, []string{"tier", "func", "verify"}, approvalGrant("tier", "func", "verify"))
}
