package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"produtos/internal/database"
	"produtos/internal/dtos"
	"produtos/internal/repositories"
	"produtos/internal/server"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupApp builds the app over a private in-memory SQLite database.
func setupApp(t *testing.T) *server.App {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })

	return server.NewApp(server.Dependencies{
		Logger:      zap.NewNop(),
		ProdutoRepo: repositories.NewGORMProdutoRepository(db),
		UserRepo:    repositories.NewGORMUserRepository(db),
		JWTSecret:   "test_jwt_secret",
	})
}

func doJSON(t *testing.T, app *server.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestProdutoEndpoints_FullLifecycle(t *testing.T) {
	app := setupApp(t)

	// Create
	resp := doJSON(t, app, http.MethodPost, "/api/produtos", map[string]interface{}{
		"nome": "Produto Teste Um", "preco": 100.0, "quantidade": 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode[dtos.ProdutoResponse](t, resp)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Produto Teste Um", created.Nome)
	assert.Equal(t, 100.0, created.Preco)
	assert.Equal(t, 5, created.Quantidade)

	// Update
	resp = doJSON(t, app, http.MethodPut, "/api/produtos/"+created.ID.String(), map[string]interface{}{
		"nome": "Produto Teste Dois", "preco": 200.0, "quantidade": 3,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dtos.ProdutoResponse](t, resp)
	assert.Equal(t, dtos.ProdutoResponse{ID: created.ID, Nome: "Produto Teste Dois", Preco: 200.0, Quantidade: 3}, updated)

	// List contains it
	resp = doJSON(t, app, http.MethodGet, "/api/produtos", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dtos.ProdutoResponse](t, resp)
	assert.Contains(t, list, updated)

	// Get by ID
	resp = doJSON(t, app, http.MethodGet, "/api/produtos/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, updated, decode[dtos.ProdutoResponse](t, resp))

	// Delete returns the last state
	resp = doJSON(t, app, http.MethodDelete, "/api/produtos/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, updated, decode[dtos.ProdutoResponse](t, resp))

	// Gone from the list
	resp = doJSON(t, app, http.MethodGet, "/api/produtos", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, p := range decode[[]dtos.ProdutoResponse](t, resp) {
		assert.NotEqual(t, created.ID, p.ID)
	}
}

func TestProdutoEndpoints_EmptyListIsArray(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/produtos", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.JSONEq(t, "[]", string(raw))
}

func TestProdutoEndpoints_UnknownIDOnWrite(t *testing.T) {
	app := setupApp(t)
	missing := uuid.NewString()

	resp := doJSON(t, app, http.MethodPut, "/api/produtos/"+missing, map[string]interface{}{
		"nome": "Produto Teste Dois", "preco": 200.0, "quantidade": 3,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Produto não encontrado."}, decode[[]string](t, resp))

	resp = doJSON(t, app, http.MethodDelete, "/api/produtos/"+missing, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Produto não encontrado."}, decode[[]string](t, resp))
}

func TestProdutoEndpoints_UnknownIDOnGetIsServerError(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/produtos/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "Erro interno do servidor.", body["message"])
}

func TestProdutoEndpoints_Validation(t *testing.T) {
	app := setupApp(t)

	tests := []struct {
		name     string
		body     map[string]interface{}
		expected []string
	}{
		{
			name:     "nome too short",
			body:     map[string]interface{}{"nome": "Curto", "preco": 10.0, "quantidade": 1},
			expected: []string{"Por favor, informe o nome do produto de 8 a 150 caracteres."},
		},
		{
			name:     "nome too long",
			body:     map[string]interface{}{"nome": strings.Repeat("a", 151), "preco": 10.0, "quantidade": 1},
			expected: []string{"Por favor, informe o nome do produto de 8 a 150 caracteres."},
		},
		{
			name:     "nome blank",
			body:     map[string]interface{}{"nome": "          ", "preco": 10.0, "quantidade": 1},
			expected: []string{"Por favor, informe o nome do produto."},
		},
		{
			name:     "preco not positive",
			body:     map[string]interface{}{"nome": "Produto Teste Um", "preco": 0, "quantidade": 1},
			expected: []string{"Por favor, informe um valor positivo para o preço do produto."},
		},
		{
			name:     "preco rounds to zero",
			body:     map[string]interface{}{"nome": "Produto Minusculo", "preco": 0.004, "quantidade": 1},
			expected: []string{"Por favor, informe um valor positivo para o preço do produto."},
		},
		{
			name:     "preco above column precision",
			body:     map[string]interface{}{"nome": "Produto Caríssimo", "preco": 1e12, "quantidade": 1},
			expected: []string{"Por favor, informe um preço menor ou igual a 99999999.99."},
		},
		{
			name:     "quantidade above integer column",
			body:     map[string]interface{}{"nome": "Produto Teste Um", "preco": 10.0, "quantidade": int64(3000000000)},
			expected: []string{"Por favor, informe a quantidade com valor menor ou igual a 2147483647."},
		},
		{
			name:     "quantidade below one",
			body:     map[string]interface{}{"nome": "Produto Teste Um", "preco": 10.0, "quantidade": 0},
			expected: []string{"Por favor, informe a quantidade com valor maior ou igual a 1."},
		},
		{
			name: "everything missing",
			body: map[string]interface{}{},
			expected: []string{
				"Por favor, informe o nome do produto.",
				"Por favor, informe o preço do produto.",
				"Por favor, informe a quantidade do produto.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/produtos", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.expected, decode[[]string](t, resp))
		})
	}

	// Nothing reached the store.
	resp := doJSON(t, app, http.MethodGet, "/api/produtos", nil)
	assert.Empty(t, decode[[]dtos.ProdutoResponse](t, resp))
}

func TestProdutoEndpoints_PrecoBounds(t *testing.T) {
	app := setupApp(t)

	for _, preco := range []float64{0.01, 99999999.99} {
		resp := doJSON(t, app, http.MethodPost, "/api/produtos", map[string]interface{}{
			"nome": "Produto no Limite", "preco": preco, "quantidade": 1,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, "preco %v", preco)
		assert.Equal(t, preco, decode[dtos.ProdutoResponse](t, resp).Preco)
	}
}

func TestProdutoEndpoints_InvalidUpdateOnExistingID(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/produtos", map[string]interface{}{
		"nome": "Produto Teste Um", "preco": 100.0, "quantidade": 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode[dtos.ProdutoResponse](t, resp)

	resp = doJSON(t, app, http.MethodPut, "/api/produtos/"+created.ID.String(), map[string]interface{}{
		"nome": "Produto Teste Dois", "preco": -1, "quantidade": 3,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/produtos/"+created.ID.String(), nil)
	assert.Equal(t, created, decode[dtos.ProdutoResponse](t, resp))
}

func TestProdutoEndpoints_PrecoIsStoredWithTwoDecimals(t *testing.T) {
	app := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/produtos", map[string]interface{}{
		"nome": "Produto Arredondado", "preco": 10.555, "quantidade": 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode[dtos.ProdutoResponse](t, resp)
	assert.Equal(t, 10.56, created.Preco)

	resp = doJSON(t, app, http.MethodGet, "/api/produtos/"+created.ID.String(), nil)
	assert.Equal(t, 10.56, decode[dtos.ProdutoResponse](t, resp).Preco)
}

func TestProdutoEndpoints_BadInput(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/produtos", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Requisição inválida."}, decode[[]string](t, resp))

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp := doJSON(t, app, method, "/api/produtos/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, method)
		assert.Equal(t, []string{"ID inválido."}, decode[[]string](t, resp))
	}
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	user := map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", user)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	registerResp := decode[map[string]interface{}](t, resp)
	assert.Equal(t, "User registered successfully", registerResp["message"])
	assert.NotContains(t, registerResp["user"], "password")

	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", user)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]string{"username": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "testuser", "password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loginResp := decode[map[string]string](t, resp)
	require.NotEmpty(t, loginResp["token"])

	claims, err := app.AuthService.ValidateToken(loginResp["token"])
	require.NoError(t, err)
	assert.Equal(t, "testuser", claims["username"])

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "testuser", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
