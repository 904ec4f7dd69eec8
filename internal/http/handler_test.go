package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"condo-forms/internal/service"
)

var fixedNow = time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

func newTestRouter(options ...service.Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	options = append([]service.Option{service.WithClock(func() time.Time { return fixedNow })}, options...)
	return NewRouter(service.New(options...), "condo-forms-test")
}

func doRequest(router *gin.Engine, method string, path string, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeProblem(t *testing.T, w *httptest.ResponseRecorder) ProblemDetails {
	t.Helper()
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, problemContentType) {
		t.Fatalf("expected problem content type, got %q", got)
	}
	var problem ProblemDetails
	if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	return problem
}

func TestHealth(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodGet, "/api/v1/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get(headerRequestID); got == "" {
		t.Fatalf("expected request id header")
	}
}

func TestValidateFieldEndpoint(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/api/v1/validate/cpf", `{"value":"52998224725"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result service.FieldResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.Valid || result.Formatted != "529.982.247-25" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestValidateFieldEndpointUnknownField(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/api/v1/validate/blood_type", `{"value":"O+"}`, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	problem := decodeProblem(t, w)
	if problem.Type != problemTypeNotFound || problem.Instance != "/api/v1/validate/blood_type" {
		t.Fatalf("unexpected problem: %+v", problem)
	}
}

func TestValidateFieldEndpointRejectsMalformedBody(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/api/v1/validate/cpf", `{"value":`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if problem := decodeProblem(t, w); problem.Type != problemTypeValidation {
		t.Fatalf("unexpected problem type %q", problem.Type)
	}
}

func TestValidateBatchEndpoint(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/api/v1/validate", `{"items":[{"field":"cep","value":"01310-100"},{"field":"email","value":"morador@"}]}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var output service.BatchOutput
	if err := json.Unmarshal(w.Body.Bytes(), &output); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if output.Valid || len(output.Results) != 2 || !output.Results[0].Valid || output.Results[1].Valid {
		t.Fatalf("unexpected output: %+v", output)
	}

	w = doRequest(router, http.MethodPost, "/api/v1/validate", `{"items":[]}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %d", w.Code)
	}
}

func TestFormatAndMoneyEndpoints(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/api/v1/format/cep", `{"value":"01310100"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var formatted service.FormatOutput
	if err := json.Unmarshal(w.Body.Bytes(), &formatted); err != nil {
		t.Fatalf("decode format output: %v", err)
	}
	if formatted.Value != "01310-100" {
		t.Fatalf("unexpected formatted value %q", formatted.Value)
	}

	w = doRequest(router, http.MethodPost, "/api/v1/money/parse", `{"value":"R$ 1.234,56"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var money service.MoneyOutput
	if err := json.Unmarshal(w.Body.Bytes(), &money); err != nil {
		t.Fatalf("decode money output: %v", err)
	}
	if money.Amount != 1234.56 {
		t.Fatalf("unexpected amount %v", money.Amount)
	}
}

func TestRegisterResidentEndpointReturnsFieldErrors(t *testing.T) {
	router := newTestRouter()

	body := `{"name":"Ana","email":"ana@condominio.com.br","cpf":"111.111.111-11","phone":"11987654321",` +
		`"birth_date":"05/03/1990","unit":"101","password":"Senha@Fort1","password_confirmation":"Senha@Fort1"}`
	w := doRequest(router, http.MethodPost, "/api/v1/forms/residents", body, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	problem := decodeProblem(t, w)
	if problem.Type != problemTypeInvalidForm {
		t.Fatalf("unexpected problem type %q", problem.Type)
	}
	want := []service.FieldError{
		{Field: "name", Message: "Informe o nome completo"},
		{Field: "cpf", Message: "CPF inválido"},
	}
	if len(problem.Errors) != len(want) {
		t.Fatalf("unexpected errors: %+v", problem.Errors)
	}
	for i := range want {
		if problem.Errors[i] != want[i] {
			t.Fatalf("error %d: expected %+v, got %+v", i, want[i], problem.Errors[i])
		}
	}
}

func TestRegisterResidentEndpointCreated(t *testing.T) {
	router := newTestRouter()

	body := `{"name":"Ana Lima","email":"ana@condominio.com.br","cpf":"529.982.247-25","phone":"11987654321",` +
		`"birth_date":"05/03/1990","unit":"101","password":"Senha@Fort1","password_confirmation":"Senha@Fort1"}`
	w := doRequest(router, http.MethodPost, "/api/v1/forms/residents", body, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var output service.ResidentRegistrationOutput
	if err := json.Unmarshal(w.Body.Bytes(), &output); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if output.Age != 36 || output.PasswordStrength != "Forte" {
		t.Fatalf("unexpected output: %+v", output)
	}
}

func TestReservationEndpoint(t *testing.T) {
	router := newTestRouter()

	w := doRequest(router, http.MethodPost, "/api/v1/forms/reservations", `{"amenity":"Churrasqueira","unit":"12B","date":"01/11/2026","guests":10}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(router, http.MethodPost, "/api/v1/forms/reservations", `{"amenity":"Churrasqueira","unit":"12B","date":"01/01/2026","guests":10}`, nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for past date, got %d", w.Code)
	}
}

func TestRequireAuth(t *testing.T) {
	const secret = "router-test-secret"
	router := newTestRouter(service.WithAuthConfig(secret, "condo-backend"))

	if w := doRequest(router, http.MethodGet, "/api/v1/health", "", nil); w.Code != http.StatusOK {
		t.Fatalf("expected health to stay public, got %d", w.Code)
	}

	w := doRequest(router, http.MethodPost, "/api/v1/validate/cep", `{"value":"01310100"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if problem := decodeProblem(t, w); problem.Type != problemTypeUnauthorized {
		t.Fatalf("unexpected problem type %q", problem.Type)
	}

	w = doRequest(router, http.MethodPost, "/api/v1/validate/cep", `{"value":"01310100"}`, map[string]string{"Authorization": "Basic abc"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer header, got %d", w.Code)
	}

	claims := jwt.RegisteredClaims{
		Issuer:    "condo-backend",
		Subject:   "resident-42",
		IssuedAt:  jwt.NewNumericDate(fixedNow),
		ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	w = doRequest(router, http.MethodPost, "/api/v1/validate/cep", `{"value":"01310100"}`, map[string]string{"Authorization": "Bearer " + token})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPanicRecoveryWritesProblem(t *testing.T) {
	router := newTestRouter()
	router.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := doRequest(router, http.MethodGet, "/boom", "", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if problem := decodeProblem(t, w); problem.Type != problemTypeInternal {
		t.Fatalf("unexpected problem type %q", problem.Type)
	}
}
