package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type typeQuery struct {
	Type string `form:"type" binding:"omitempty,transaction_type"`
}

func TestTransactionTypeTag(t *testing.T) {
	Register()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("expected go-playground validator engine")
	}

	tests := []struct {
		value string
		valid bool
	}{
		{"income", true},
		{"expense", true},
		{"", true},
		{"transfer", false},
		{"INCOME", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := v.Struct(typeQuery{Type: tt.value})
			if tt.valid && err != nil {
				t.Errorf("expected %q to be valid, got %v", tt.value, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("expected %q to be rejected", tt.value)
			}
		})
	}
}
