package endpoint

import (
	"net/http"
	"testing"
	"time"

	"github.com/ariebrainware/embryo-ai/model"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateToken(t *testing.T) {
	env := setupEndpointTest(t)
	env.router.GET("/api/token/validate", ValidateToken)
	user := createUser(t, env.db, "drwho", model.RoleDoctor, "pw")

	token, err := util.GenerateSessionToken(user.ID, user.Role, time.Hour)
	require.NoError(t, err)
	expired, err := util.GenerateSessionToken(user.ID, user.Role, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		headers map[string]string
		status  int
	}{
		{"bearer header", map[string]string{"Authorization": "Bearer " + token}, http.StatusOK},
		{"session-token header", map[string]string{"session-token": token}, http.StatusOK},
		{"expired", map[string]string{"Authorization": "Bearer " + expired}, http.StatusUnauthorized},
		{"garbage", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
		{"missing", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp, err := performRequest(env.router, requestSpec{method: http.MethodGet, requestPath: "/api/token/validate", headers: tt.headers})
			require.NoError(t, err)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, float64(user.ID), resp["user_id"])
				assert.Equal(t, model.RoleDoctor, resp["role"])
			}
		})
	}
}
