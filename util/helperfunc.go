package util

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every portal endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}

// APIErrorParams carries the display message and the underlying error.
type APIErrorParams struct {
	Msg string
	Err error
}

// APISuccessParams carries the display message and the payload.
type APISuccessParams struct {
	Msg  string
	Data interface{}
}

// Contains reports whether d is in dl.
func Contains(d string, dl []string) bool {
	for _, v := range dl {
		if v == d {
			return true
		}
	}
	return false
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// fail writes an error envelope. Client and server errors carry an empty
// object as data; auth denials carry none.
func fail(c *gin.Context, status int, params APIErrorParams, withData bool) {
	res := APIResponse{Error: errorText(params.Err), Msg: params.Msg}
	if withData {
		res.Data = map[string]interface{}{}
	}
	c.JSON(status, res)
}

func succeed(c *gin.Context, status int, params APISuccessParams) {
	c.JSON(status, APIResponse{Success: true, Msg: params.Msg, Data: params.Data})
}

// CallErrorNotFound answers 404, e.g. an unknown patient, bill or appointment.
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	fail(c, http.StatusNotFound, params, true)
}

// CallUserError answers 400 for validation, duplicate and status transition errors.
func CallUserError(c *gin.Context, params APIErrorParams) {
	fail(c, http.StatusBadRequest, params, true)
}

// CallServerError answers 500.
func CallServerError(c *gin.Context, params APIErrorParams) {
	fail(c, http.StatusInternalServerError, params, true)
}

// CallUserNotAuthorized answers 401 for a missing or unknown session and bad credentials.
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	fail(c, http.StatusUnauthorized, params, false)
}

// CallForbidden answers 403 when the session's role may not use the route.
func CallForbidden(c *gin.Context, params APIErrorParams) {
	fail(c, http.StatusForbidden, params, false)
}

// CallTooManyRequests answers 429 from the login rate limiter.
func CallTooManyRequests(c *gin.Context, params APIErrorParams) {
	fail(c, http.StatusTooManyRequests, params, false)
}

// CallSuccessOK answers 200 with params.Data.
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	succeed(c, http.StatusOK, params)
}

// CallCreated answers 201 with the created record.
func CallCreated(c *gin.Context, params APISuccessParams) {
	succeed(c, http.StatusCreated, params)
}

// CallUserFound answers 307 carrying a portal redirect decision.
func CallUserFound(c *gin.Context, params APISuccessParams) {
	succeed(c, http.StatusTemporaryRedirect, params)
}

// NormalizeName trims a display name and collapses internal whitespace, so
// "Dr.  Emily   Carter" and "Dr. Emily Carter" compare equal.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
