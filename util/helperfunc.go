package util

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every handler answers with. Payload keys are
// flattened next to success/message by CallSuccessOK and CallCreated.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg  string
	Data gin.H
}

// Contains function is to check item whether is exist or not in a list and will return bool
func Contains(d string, dl []string) bool {
	for _, v := range dl {
		if v == d {
			return true
		}
	}
	return false
}

func errorBody(params APIErrorParams) APIResponse {
	response := APIResponse{Success: false, Message: params.Msg}
	if params.Err != nil {
		response.Error = params.Err.Error()
	}
	return response
}

func successBody(params APISuccessParams) gin.H {
	body := gin.H{}
	for k, v := range params.Data {
		body[k] = v
	}
	body["success"] = true
	if params.Msg != "" {
		body["message"] = params.Msg
	}
	return body
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusBadRequest, errorBody(params))
}

// CallUserNotAuthorized is for return API response with status code 401
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusUnauthorized, errorBody(params))
}

// CallForbidden is for return API response with status code 403
func CallForbidden(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusForbidden, errorBody(params))
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusNotFound, errorBody(params))
}

// CallTooManyRequests is for return API response with status code 429
func CallTooManyRequests(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusTooManyRequests, errorBody(params))
}

// CallServerError is for return API response server error
func CallServerError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusInternalServerError, errorBody(params))
}

// CallSuccessOK is for return API response with status code 200, payload keys are merged into the body
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, successBody(params))
}

// CallCreated is for return API response with status code 201
func CallCreated(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusCreated, successBody(params))
}

// NormalizeName trims the name and collapses internal whitespace runs into single spaces.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
