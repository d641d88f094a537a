package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLabel(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"E-HSMT (TVTK)", []string{"E-HSMT", "(TVTK)"}},
		{"Ký HĐ (GS)", []string{"Ký HĐ", "(GS)"}},
		{"Nộp PAKT", []string{"Nộp", "PAKT"}},
		{"Giao dự án", []string{"Giao", "dự án"}},
		{"Khởi", []string{"Khởi"}},
		{"(91 ngày)", []string{"(91 ngày)"}},
		{"trailing ", []string{"trailing "}},
		{"", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLabel(tt.in))
		})
	}
}

func TestDurationText(t *testing.T) {
	assert.Equal(t, "(91 ngày)", DurationText(91))
	assert.Equal(t, "(1 ngày)", DurationText(1))
}
