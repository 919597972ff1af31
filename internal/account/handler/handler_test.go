package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ibangate/internal/account"
	"ibangate/internal/account/handler/mocks"
	dErrors "ibangate/pkg/domain-errors"
	"ibangate/pkg/iban"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

func newTestHandler(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(mockService, logger).Register(r)
	return r, mockService
}

func testAccount() account.Account {
	return account.Account{
		ID:        uuid.MustParse("b9c7a0f4-2f5e-4a3b-9c1d-8e6f5a4b3c2d"),
		IBAN:      iban.MustParse("NL91ABNA0417164300"),
		Label:     "payroll",
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestHandleRegister_Created(t *testing.T) {
	router, mockService := newTestHandler(t)
	acct := testAccount()
	mockService.EXPECT().Register(gomock.Any(), "NL91ABNA0417164300", "payroll").Return(acct, nil)

	body, err := json.Marshal(map[string]string{"iban": "NL91ABNA0417164300", "label": "payroll"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/accounts", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, acct.ID.String(), resp["id"])
	assert.Equal(t, "NL91ABNA0417164300", resp["iban"])
	assert.Equal(t, "NL91 ABNA 0417 1643 00", resp["formatted"])
	assert.Equal(t, "payroll", resp["label"])
}

func TestHandleRegister_InvalidIBAN(t *testing.T) {
	router, mockService := newTestHandler(t)
	mockService.EXPECT().Register(gomock.Any(), "NL12ABNA0417164300", "payroll").
		Return(account.Account{}, dErrors.New(dErrors.CodeInvalidInput, "checksum mismatch"))

	body, err := json.Marshal(map[string]string{"iban": "NL12ABNA0417164300", "label": "payroll"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/accounts", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_input", resp["error"])
	assert.Equal(t, "checksum mismatch", resp["message"])
}

func TestHandleRegister_BadBody(t *testing.T) {
	router, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/accounts", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandleGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, mockService := newTestHandler(t)
		acct := testAccount()
		mockService.EXPECT().Get(gomock.Any(), acct.ID).Return(acct, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/accounts/"+acct.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "NL91ABNA0417164300", resp["iban"])
	})

	t.Run("missing", func(t *testing.T) {
		router, mockService := newTestHandler(t)
		id := uuid.New()
		mockService.EXPECT().Get(gomock.Any(), id).
			Return(account.Account{}, dErrors.New(dErrors.CodeNotFound, "account not found"))

		req := httptest.NewRequest(http.MethodGet, "/v1/accounts/"+id.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		router, _ := newTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/accounts/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("corrupted record", func(t *testing.T) {
		router, mockService := newTestHandler(t)
		id := uuid.New()
		mockService.EXPECT().Get(gomock.Any(), id).
			Return(account.Account{}, dErrors.New(dErrors.CodeIntegrity, "stored account failed validation"))

		req := httptest.NewRequest(http.MethodGet, "/v1/accounts/"+id.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "integrity", resp["error"])
	})
}

func TestHandleList(t *testing.T) {
	router, mockService := newTestHandler(t)
	mockService.EXPECT().List(gomock.Any()).Return([]account.Account{testAccount()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Accounts []map[string]any `json:"accounts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Accounts, 1)
	assert.Equal(t, "NL91 ABNA 0417 1643 00", resp.Accounts[0]["formatted"])
}

func TestHandleList_Empty(t *testing.T) {
	router, mockService := newTestHandler(t)
	mockService.EXPECT().List(gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"accounts":[]}`, w.Body.String())
}
