package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
)

func bindJSON(t *testing.T, body string, obj any) map[string][]string {
	t.Helper()
	RegisterValidation()

	err := binding.JSON.BindBody([]byte(body), obj)
	if err == nil {
		return nil
	}
	return ValidationErrors(err)
}

func TestValidationErrors_FieldNames(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		obj       any
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing amount",
			body:      `{"type":"expense","date":"2025-03-01"}`,
			obj:       &TransactionRequest{},
			wantField: "amount",
			wantMsg:   "The amount field is required.",
		},
		{
			name:      "amount below minimum",
			body:      `{"type":"expense","amount":0.001,"date":"2025-03-01"}`,
			obj:       &TransactionRequest{},
			wantField: "amount",
			wantMsg:   "The amount field must be at least 0.01.",
		},
		{
			name:      "invalid type",
			body:      `{"type":"transfer","amount":10,"date":"2025-03-01"}`,
			obj:       &TransactionRequest{},
			wantField: "type",
			wantMsg:   "The selected type is invalid.",
		},
		{
			name:      "bad date",
			body:      `{"type":"income","amount":10,"date":"01/03/2025"}`,
			obj:       &TransactionRequest{},
			wantField: "date",
			wantMsg:   "The date field must match the format Y-m-d.",
		},
		{
			name:      "person too long",
			body:      `{"type":"outgoing","person":"` + longString(151) + `","amount":5,"due_date":"2025-03-01"}`,
			obj:       &DebtRequest{},
			wantField: "person",
			wantMsg:   "The person field must not be greater than 150 characters.",
		},
		{
			name:      "month out of range",
			body:      `{"month":13,"year":2025,"amount":100}`,
			obj:       &SetMonthlyBudgetRequest{},
			wantField: "month",
			wantMsg:   "The month field must not be greater than 12.",
		},
		{
			name:      "password confirmation reported on password",
			body:      `{"name":"Ana","email":"ana@example.com","password":"secret123","password_confirmation":"other123"}`,
			obj:       &RegisterRequest{},
			wantField: "password",
			wantMsg:   "The password field confirmation does not match.",
		},
		{
			name:      "short password",
			body:      `{"name":"Ana","email":"ana@example.com","password":"short","password_confirmation":"short"}`,
			obj:       &RegisterRequest{},
			wantField: "password",
			wantMsg:   "The password field must be at least 8 characters.",
		},
		{
			name:      "malformed category id",
			body:      `{"type":"expense","amount":10,"date":"2025-03-01","category_id":"abc"}`,
			obj:       &TransactionRequest{},
			wantField: "category_id",
			wantMsg:   "The category id field must be a valid UUID.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := bindJSON(t, tt.body, tt.obj)
			msgs, ok := fields[tt.wantField]
			if !ok {
				t.Fatalf("expected error on %q, got %v", tt.wantField, fields)
			}
			if msgs[0] != tt.wantMsg {
				t.Errorf("expected %q, got %q", tt.wantMsg, msgs[0])
			}
		})
	}
}

func TestValidationErrors_MalformedBody(t *testing.T) {
	fields := bindJSON(t, `{"type":`, &TransactionRequest{})
	if _, ok := fields["body"]; !ok {
		t.Errorf("expected body error, got %v", fields)
	}

	fields = bindJSON(t, `{"type":"expense","amount":"ten","date":"2025-03-01"}`, &TransactionRequest{})
	if _, ok := fields["amount"]; !ok {
		t.Errorf("expected amount type error, got %v", fields)
	}
}

func TestValidationErrors_ValidRequest(t *testing.T) {
	var req TransactionRequest
	if fields := bindJSON(t, `{"type":"expense","amount":12.5,"date":"2025-03-01"}`, &req); fields != nil {
		t.Fatalf("unexpected errors %v", fields)
	}
	if req.Category() != nil {
		t.Error("expected no category")
	}
	if got := AmountFromFloat(req.Amount).StringFixed(2); got != "12.50" {
		t.Errorf("expected 12.50, got %s", got)
	}
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse(map[string][]string{
		"name":   {"The name field is required."},
		"amount": {"The amount field is required."},
	})
	if resp.Success {
		t.Error("expected success=false")
	}
	if resp.Message != "The amount field is required." {
		t.Errorf("expected first field message, got %q", resp.Message)
	}
}

func longString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}
