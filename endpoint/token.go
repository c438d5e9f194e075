package endpoint

import (
	"fmt"

	"github.com/ariebrainware/embryo-ai/middleware"
	"github.com/ariebrainware/embryo-ai/util"
	"github.com/gin-gonic/gin"
)

// ValidateToken godoc
// @Summary      Validate session token
// @Description  Validate that the login token is signed, unexpired and, when Redis is configured, still has a live session
// @Tags         Authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Valid session token"
// @Failure      401 {object} util.APIResponse "Invalid or expired session token"
// @Router       /token/validate [get]
func ValidateToken(c *gin.Context) {
	uid, ok := middleware.GetUserID(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{Msg: "Invalid session token", Err: fmt.Errorf("no valid session")})
		return
	}
	role, _ := middleware.GetRole(c)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Valid session token",
		Data: gin.H{"user_id": uid, "role": role},
	})
}
