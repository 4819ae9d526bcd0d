// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasOutputs(t *testing.T) {
	tests := []struct {
		name        string
		individual  bool
		concatenate bool
		want        bool
	}{
		{name: "both", individual: true, concatenate: true, want: true},
		{name: "sidecars only", individual: true, want: true},
		{name: "concatenated only", concatenate: true, want: true},
		{name: "neither", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultExtractionConfig()
			cfg.SaveIndividualFiles = tt.individual
			cfg.ConcatenatePrompts = tt.concatenate
			assert.Equal(t, tt.want, cfg.HasOutputs())
		})
	}
}
