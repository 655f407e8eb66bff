package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisclose(t *testing.T) {
	tests := []struct {
		name     string
		isSecret bool
		verified bool
		want     Visibility
	}{
		{"public unverified", false, false, Visibility{ContentFull: true, AnswerFull: true}},
		{"public verified", false, true, Visibility{ContentFull: true, AnswerFull: true}},
		{"secret unverified", true, false, Visibility{ContentFull: false, AnswerFull: false}},
		{"secret verified", true, true, Visibility{ContentFull: true, AnswerFull: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Disclose(tt.isSecret, tt.verified))
		})
	}
}
