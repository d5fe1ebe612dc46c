package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireOperator(t *testing.T) {
	var gotID int64
	var called bool
	handler := RequireOperator(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		gotID, _ = GetOperatorIDFromContext(r.Context())
	}))

	cases := []struct {
		name       string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"valid id", "7", http.StatusOK, true},
		{"missing header", "", http.StatusBadRequest, false},
		{"not a number", "root", http.StatusBadRequest, false},
		{"zero", "0", http.StatusBadRequest, false},
		{"negative", "-3", http.StatusBadRequest, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tc.header != "" {
				req.Header.Set(OperatorHeader, tc.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if called != tc.wantCalled {
				t.Fatalf("next called = %v, want %v", called, tc.wantCalled)
			}
		})
	}
	if gotID != 7 {
		t.Fatalf("operator id = %d, want 7", gotID)
	}
}

func TestGetOperatorIDFromContextMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := GetOperatorIDFromContext(req.Context()); ok {
		t.Fatal("unset context must not yield an operator id")
	}
}
