package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		pattern string
		want    bool
	}{
		{"substring match", "assets-old.s3.ap-northeast-2.amazonaws.com", "s3.ap-northeast-2.amazonaws.com", true},
		{"substring miss", "assets-old.s3.us-east-1.amazonaws.com", "s3.ap-northeast-2.amazonaws.com", false},
		{"glob match", "assets-old.s3.ap-northeast-2.amazonaws.com", "*.s3.*.amazonaws.com", true},
		{"glob miss", "api.example.com", "*.s3.*.amazonaws.com", false},
		{"glob is anchored", "x.s3.ap-northeast-2.amazonaws.com.evil", "*.s3.*.amazonaws.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchPattern(tt.value, tt.pattern))
		})
	}
}
