package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"faq-support-go/pkg/token"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:5173"))
	r.POST("/chat/message", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/chat/message", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow-origin = %q", got)
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/echo", func(c *gin.Context) {
		b, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.String(http.StatusOK, string(b))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("short")))
	if w.Code != http.StatusOK || w.Body.String() != "short" {
		t.Fatalf("small body: %d %q", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("much too long")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("large body status = %d", w.Code)
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	m := token.NewJWTManager("secret", 1)
	adminTok, _ := m.GenerateToken("ops", "ADMIN")
	userTok, _ := m.GenerateToken("bob", "USER")

	r := gin.New()
	r.GET("/admin/faqs", AdminAuthMiddleware(m, "ADMIN"), func(c *gin.Context) {
		claims := c.MustGet(ClaimsKey).(*token.CustomClaims)
		c.String(http.StatusOK, claims.Username)
	})

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Token " + adminTok, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + userTok, http.StatusForbidden},
		{"admin", "Bearer " + adminTok, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/faqs", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
