package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasknotes/internal/core/model/response"
	"tasknotes/internal/core/telemetry"
	"tasknotes/pkg/auth"
	"tasknotes/pkg/logger"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type AuthenticateTestSuite struct {
	suite.Suite
	tokens *auth.JWT
	router *gin.Engine
}

func (s *AuthenticateTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	RegisterTestingT(s.T())

	s.tokens = auth.New("middleware-secret", time.Hour)
	s.router = gin.New()
	s.router.GET("/private", Authenticate(s.tokens), func(c *gin.Context) {
		fromGin, _ := CurrentUserID(c)
		fromCtx, _ := UserIDFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"gin": fromGin, "ctx": fromCtx})
	})
}

func TestAuthenticateTestSuite(t *testing.T) {
	suite.Run(t, new(AuthenticateTestSuite))
}

func (s *AuthenticateTestSuite) do(header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *AuthenticateTestSuite) expectUnauthenticated(w *httptest.ResponseRecorder) {
	Expect(w.Code).To(Equal(http.StatusUnauthorized))

	var body response.ErrorResponse
	Expect(json.Unmarshal(w.Body.Bytes(), &body)).To(Succeed())
	Expect(body.Error.Code).To(Equal("UNAUTHENTICATED"))
}

func (s *AuthenticateTestSuite) TestRejectsMissingHeader() {
	s.expectUnauthenticated(s.do(""))
}

func (s *AuthenticateTestSuite) TestRejectsWrongScheme() {
	token, _ := s.tokens.CreateToken(7)

	s.expectUnauthenticated(s.do("Basic " + token))
	s.expectUnauthenticated(s.do(token))
	s.expectUnauthenticated(s.do("Bearer "))
}

func (s *AuthenticateTestSuite) TestRejectsForeignToken() {
	token, _ := auth.New("someone-else", time.Hour).CreateToken(7)

	s.expectUnauthenticated(s.do("Bearer " + token))
}

func (s *AuthenticateTestSuite) TestStoresCallerID() {
	token, _ := s.tokens.CreateToken(7)

	w := s.do("Bearer " + token)

	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Body.String()).To(MatchJSON(`{"gin":7,"ctx":7}`))
}

func TestRequestID(t *testing.T) {
	RegisterTestingT(t)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFrom(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	Expect(w.Body.String()).NotTo(BeEmpty())
	Expect(w.Header().Get(RequestIDHeader)).To(Equal(w.Body.String()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	Expect(w.Body.String()).To(Equal("fixed-id"))
}

func TestCORS_Preflight(t *testing.T) {
	RegisterTestingT(t)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(CORS())
	router.GET("/api/tasks", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/tasks", nil))

	Expect(w.Code).To(Equal(http.StatusNoContent))
	Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
}

func TestMetricsAndLogging(t *testing.T) {
	RegisterTestingT(t)
	gin.SetMode(gin.TestMode)

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewAppMetrics(registry)

	router := gin.New()
	router.Use(RequestID(), Logging(logger.NewNop()), Metrics(metrics))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for range 3 {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	}

	count, err := testutil.GatherAndCount(registry, "http_requests_total")
	Expect(err).NotTo(HaveOccurred())
	Expect(count).To(Equal(1))
}
