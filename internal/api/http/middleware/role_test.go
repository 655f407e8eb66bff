package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"corpsite-back/internal/api/http/handler"
	"corpsite-back/internal/model"
)

func runRoleMiddleware(t *testing.T, roleVal any, setRole bool) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin", nil)

	if setRole {
		c.Set(model.UserRoleKey, roleVal)
	}

	RequireRoles(model.RoleAdmin)(c)

	return w
}

func TestRequireRolesAllows(t *testing.T) {
	w := runRoleMiddleware(t, model.RoleAdmin, true)

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Body.String())
}

func TestRequireRolesRejectsMissingRole(t *testing.T) {
	w := runRoleMiddleware(t, nil, false)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesRejectsWrongRole(t *testing.T) {
	w := runRoleMiddleware(t, "viewer", true)

	require.Equal(t, http.StatusForbidden, w.Code)
}

// Нестроковая роль в контексте должна давать ровно один ответ об ошибке.
func TestRequireRolesRejectsInvalidRoleType(t *testing.T) {
	w := runRoleMiddleware(t, 42, true)

	require.Equal(t, http.StatusForbidden, w.Code)

	dec := json.NewDecoder(w.Body)

	var resp handler.ResponseWithMessage
	require.NoError(t, dec.Decode(&resp))
	require.Equal(t, handler.StatusNotPermitted, resp.Status)
	require.False(t, dec.More())
}
