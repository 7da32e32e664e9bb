package hamming

import (
	"context"
	"strconv"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		paritySymbols int
	}{
		{3},
		{4},
	}
	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			actual, err := New(context.Background(), test.paritySymbols, 0)
			if err != nil {
				t.Fatalf("expected no error but found: %v", err)
			}

			if !actual.Validate() {
				t.Fatalf("expected valid linearblock code")
			}
		})
	}
}

func TestNew_TooFewParitySymbols(t *testing.T) {
	_, err := New(context.Background(), 2, 0)
	if err == nil {
		t.Fatalf("expected an error but found none")
	}
}
