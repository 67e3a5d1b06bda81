package apply_discount

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotBookingService/internal/domain"
	applyDiscount "github.com/m04kA/SMC-SlotBookingService/internal/usecase/apply_discount"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *applyDiscount.Request
	resp *applyDiscount.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *applyDiscount.Request) (*applyDiscount.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc ApplyDiscountUseCase, target, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/discount", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return rec
}

func TestHandle_Applied(t *testing.T) {
	uc := &fakeUseCase{resp: &applyDiscount.Response{
		BookingID:           7,
		DiscountCode:        "PCT10",
		DiscountAmountCents: 799,
		TotalAmountCents:    7191,
		DepositAmountCents:  1438,
		RestAmountCents:     5753,
	}}

	rec := serve(uc, "/bookings/7/discount", `{"code":"pct10"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, int64(7), uc.got.BookingID)
	require.NotNil(t, uc.got.Code)
	assert.Equal(t, "pct10", *uc.got.Code)

	var body PricingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(7191), body.TotalAmountCents)
	require.NotNil(t, body.DiscountCode)
	assert.Equal(t, "PCT10", *body.DiscountCode)
}

func TestHandle_NullCodeClears(t *testing.T) {
	uc := &fakeUseCase{resp: &applyDiscount.Response{BookingID: 7, TotalAmountCents: 7990}}

	rec := serve(uc, "/bookings/7/discount", `{"code":null}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, uc.got.Code)
	assert.NotContains(t, rec.Body.String(), "discountCode")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		err        error
		wantStatus int
		wantReason string
	}{
		{
			name:       "expired code",
			target:     "/bookings/7/discount",
			body:       `{"code":"OLD"}`,
			err:        &applyDiscount.CodeRejectedError{Code: "OLD", Reason: domain.RejectExpired},
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: "expired",
		},
		{
			name:       "wrong partner",
			target:     "/bookings/7/discount",
			body:       `{"code":"OTHER"}`,
			err:        &applyDiscount.CodeRejectedError{Code: "OTHER", Reason: domain.RejectWrongPartner},
			wantStatus: http.StatusUnprocessableEntity,
			wantReason: "wrong_partner",
		},
		{"booking not found", "/bookings/7/discount", `{"code":"X"}`, applyDiscount.ErrBookingNotFound, http.StatusNotFound, ""},
		{"pricing locked", "/bookings/7/discount", `{"code":"X"}`, applyDiscount.ErrPricingLocked, http.StatusConflict, ""},
		{"internal", "/bookings/7/discount", `{"code":"X"}`, errors.New("boom"), http.StatusInternalServerError, ""},
		{"bad id", "/bookings/abc/discount", `{"code":"X"}`, nil, http.StatusBadRequest, ""},
		{"unknown field", "/bookings/7/discount", `{"coupon":"X"}`, nil, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tt.wantReason, body.Reason)
		})
	}
}
