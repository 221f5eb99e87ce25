package util

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestContains(t *testing.T) {
	list := []string{"a", "b", "c"}
	if !Contains("b", list) {
		t.Fatalf("expected Contains to return true for existing item")
	}
	if Contains("x", list) {
		t.Fatalf("expected Contains to return false for missing item")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"  Dr. Emily   Carter ": "Dr. Emily Carter",
		"Jane\t\nSmith":         "Jane Smith",
		"John Doe":              "John Doe",
		"   ":                   "",
	}
	for input, want := range tests {
		if got := NormalizeName(input); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestErrorEnvelopeShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	CallUserError(c, APIErrorParams{Msg: "Medication and a positive quantity are required"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"","msg":"Medication and a positive quantity are required","data":{}`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	CallForbidden(c, APIErrorParams{Msg: "no", Err: errors.New("forbidden")})
	if !strings.Contains(w.Body.String(), `"data":null`) {
		t.Errorf("auth denial should carry no data: %s", w.Body.String())
	}
}

func TestEnvelopeStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	errParams := APIErrorParams{Msg: "msg", Err: errors.New("boom")}
	okParams := APISuccessParams{Msg: "msg", Data: map[string]string{"id": "p001"}}

	cases := []struct {
		name string
		call func(c *gin.Context)
		code int
	}{
		{"not found", func(c *gin.Context) { CallErrorNotFound(c, errParams) }, http.StatusNotFound},
		{"user error", func(c *gin.Context) { CallUserError(c, errParams) }, http.StatusBadRequest},
		{"server error", func(c *gin.Context) { CallServerError(c, errParams) }, http.StatusInternalServerError},
		{"unauthorized", func(c *gin.Context) { CallUserNotAuthorized(c, errParams) }, http.StatusUnauthorized},
		{"forbidden", func(c *gin.Context) { CallForbidden(c, errParams) }, http.StatusForbidden},
		{"too many", func(c *gin.Context) { CallTooManyRequests(c, errParams) }, http.StatusTooManyRequests},
		{"ok", func(c *gin.Context) { CallSuccessOK(c, okParams) }, http.StatusOK},
		{"created", func(c *gin.Context) { CallCreated(c, okParams) }, http.StatusCreated},
		{"redirect", func(c *gin.Context) { CallUserFound(c, okParams) }, http.StatusTemporaryRedirect},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tc.call(c)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
			if !strings.Contains(w.Body.String(), `"msg":"msg"`) {
				t.Errorf("envelope missing msg: %s", w.Body.String())
			}
		})
	}
}
