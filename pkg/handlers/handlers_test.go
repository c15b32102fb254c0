package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rhandyus/senjagames-sub001/pkg/models"
	"github.com/rhandyus/senjagames-sub001/pkg/settlement"
	"github.com/rhandyus/senjagames-sub001/pkg/signature"
	"github.com/rhandyus/senjagames-sub001/pkg/snap"
	"github.com/rhandyus/senjagames-sub001/pkg/storage"
	"github.com/rhandyus/senjagames-sub001/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testSecret = "unit-test-secret"

func testHandler(store *mocks.Storage) *WebhookHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	verifier := signature.NewVerifier(testSecret)
	engine := settlement.NewEngine(store, nil, logger)
	return NewWebhookHandler(verifier, engine, logger)
}

func callbackBody(t *testing.T, amount models.Money) []byte {
	t.Helper()
	payload := snap.CallbackPayload{
		PartnerServiceID:   "  088899",
		CustomerNo:         "12345678901234567890",
		VirtualAccountNo:   "  08889912345678901234567890",
		VirtualAccountName: "Jokul Demo",
		TrxID:              "T1",
		PaymentRequestID:   "pr-1",
		PaidAmount:         amount,
		TrxDateTime:        "2024-06-01T10:00:00+07:00",
		ReferenceNo:        "ref-001",
		AdditionalInfo:     snap.AdditionalInfo{Channel: "VIRTUAL_ACCOUNT_BCA"},
	}
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	return body
}

// signedRequest builds a callback request with all mandatory headers and a
// signature computed with the given secret.
func signedRequest(body []byte, secret string) *http.Request {
	timestamp := "2024-06-01T10:00:05+07:00"
	req := httptest.NewRequest(http.MethodPost, snap.CallbackPath, bytes.NewReader(body))
	req.Header.Set(snap.HeaderTimestamp, timestamp)
	req.Header.Set(snap.HeaderPartnerID, "senjagames")
	req.Header.Set(snap.HeaderExternalID, "ext-41407")
	req.Header.Set(snap.HeaderSignature,
		signature.NewVerifier(secret).Sign(http.MethodPost, snap.CallbackPath, body, timestamp))
	return req
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) snap.Response {
	t.Helper()
	var resp snap.Response
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestPaymentCallback(t *testing.T) {
	order := &models.Order{
		ID:          "T1",
		UserID:      "buyer-1",
		Items:       []string{"acct-9"},
		TotalAmount: models.Money{Value: "50000", Currency: "IDR"},
		Status:      models.PENDING,
	}

	t.Run("Successful Settlement", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetOrder", mock.Anything, "T1").Return(order, nil)
		mockStore.On("SettleOrder", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		h := testHandler(mockStore)
		body := callbackBody(t, models.Money{Value: "50000", Currency: "IDR"})
		rr := httptest.NewRecorder()

		h.PaymentCallback(rr, signedRequest(body, testSecret))

		assert.Equal(t, http.StatusOK, rr.Code)
		resp := decodeResponse(t, rr)
		assert.Equal(t, "2002500", resp.ResponseCode)
		assert.Equal(t, "Successful", resp.ResponseMessage)
		mockStore.AssertExpectations(t)
	})

	t.Run("Wrong Secret Signature", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		h := testHandler(mockStore)
		body := callbackBody(t, models.Money{Value: "50000", Currency: "IDR"})
		rr := httptest.NewRecorder()

		h.PaymentCallback(rr, signedRequest(body, "wrong-secret"))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "4010000", decodeResponse(t, rr).ResponseCode)
		mockStore.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
		mockStore.AssertNotCalled(t, "SettleOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Transaction", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetOrder", mock.Anything, "T1").Return(nil, storage.ErrOrderNotFound)

		h := testHandler(mockStore)
		body := callbackBody(t, models.Money{Value: "50000", Currency: "IDR"})
		rr := httptest.NewRecorder()

		h.PaymentCallback(rr, signedRequest(body, testSecret))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "4040000", decodeResponse(t, rr).ResponseCode)
	})

	t.Run("Amount Mismatch", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetOrder", mock.Anything, "T1").Return(order, nil)

		h := testHandler(mockStore)
		body := callbackBody(t, models.Money{Value: "49999", Currency: "IDR"})
		rr := httptest.NewRecorder()

		h.PaymentCallback(rr, signedRequest(body, testSecret))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "4000001", decodeResponse(t, rr).ResponseCode)
		mockStore.AssertNotCalled(t, "SettleOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing Headers", func(t *testing.T) {
		for _, name := range requiredHeaders {
			mockStore := new(mocks.Storage)
			h := testHandler(mockStore)
			body := callbackBody(t, models.Money{Value: "50000", Currency: "IDR"})

			req := signedRequest(body, testSecret)
			req.Header.Del(name)
			rr := httptest.NewRecorder()

			h.PaymentCallback(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code, "missing %s", name)
			assert.Equal(t, "4000000", decodeResponse(t, rr).ResponseCode, "missing %s", name)
			mockStore.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
		}
	})

	t.Run("Malformed Body With Valid Signature", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		h := testHandler(mockStore)
		body := []byte("not-json")
		rr := httptest.NewRecorder()

		h.PaymentCallback(rr, signedRequest(body, testSecret))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "4000000", decodeResponse(t, rr).ResponseCode)
		mockStore.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
	})

	t.Run("Payload Missing Required Fields", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		h := testHandler(mockStore)
		body := []byte(`{"referenceNo":"ref-001"}`)
		rr := httptest.NewRecorder()

		h.PaymentCallback(rr, signedRequest(body, testSecret))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "4000000", decodeResponse(t, rr).ResponseCode)
		mockStore.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
	})

	t.Run("Mounted Route Serves Callback Path", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetOrder", mock.Anything, "T1").Return(order, nil)
		mockStore.On("SettleOrder", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)

		h := testHandler(mockStore)
		router := chi.NewRouter()
		h.Mount(router)

		body := callbackBody(t, models.Money{Value: "50000", Currency: "IDR"})
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, signedRequest(body, testSecret))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Storage Failure Returns Retryable Error", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetOrder", mock.Anything, "T1").Return(nil, assert.AnError)

		h := testHandler(mockStore)
		body := callbackBody(t, models.Money{Value: "50000", Currency: "IDR"})
		rr := httptest.NewRecorder()

		h.PaymentCallback(rr, signedRequest(body, testSecret))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "5000000", decodeResponse(t, rr).ResponseCode)
	})
}
