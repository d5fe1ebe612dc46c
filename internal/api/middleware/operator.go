package middleware

import (
	"context"
	"net/http"
	"strconv"

	"proctor_admin/internal/common"
)

type contextKey string

const OperatorIDCtxKey contextKey = "operatorID"

// OperatorHeader names the acting operator on mutating requests. This is
// attribution for the audit trail, not authentication.
const OperatorHeader = "X-Operator-ID"

// RequireOperator rejects requests that do not name a valid operator id.
func RequireOperator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(OperatorHeader)
		if raw == "" {
			common.RespondWithError(w, http.StatusBadRequest, OperatorHeader+" header required")
			return
		}
		operatorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || operatorID <= 0 {
			common.RespondWithError(w, http.StatusBadRequest, "Invalid "+OperatorHeader+" header")
			return
		}
		ctx := context.WithValue(r.Context(), OperatorIDCtxKey, operatorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOperatorIDFromContext returns the operator id set by RequireOperator.
func GetOperatorIDFromContext(ctx context.Context) (int64, bool) {
	operatorID, ok := ctx.Value(OperatorIDCtxKey).(int64)
	return operatorID, ok
}
