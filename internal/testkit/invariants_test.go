package testkit_test

import (
	"testing"

	"exprnorm/internal/meta"
	"exprnorm/internal/testkit"
)

func TestCheckNormalizedAccessorCalls(t *testing.T) {
	w := testkit.NewWidgets(t)
	x := w.Param("x")
	noValue := meta.NewMethod(w.Widget, "set_Name", nil, w.Types.Builtins().Void, meta.MethodSpecialName)

	tests := []struct {
		name    string
		call    func() error
		wantErr bool
	}{
		{"set without value", func() error { return testkit.CheckNormalized(w.Call(x, noValue)) }, false},
		{"ordinary method", func() error { return testkit.CheckNormalized(w.Call(x, w.Describe)) }, false},
		{"getter", func() error { return testkit.CheckNormalized(w.Call(x, w.Secret)) }, true},
		{"setter with value", func() error { return testkit.CheckNormalized(w.Call(x, w.SetCount, w.Int(1))) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); (err != nil) != tt.wantErr {
				t.Errorf("CheckNormalized error = %v, want error %v", err, tt.wantErr)
			}
		})
	}
}
