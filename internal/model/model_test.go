package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		model    interface{ TableName() string }
		expected string
	}{
		{"Run", &Run{}, "runs"},
		{"Sample", &Sample{}, "samples"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.TableName())
		})
	}
}

func TestDatabaseModels(t *testing.T) {
	assert.Len(t, DatabaseModels, 2)
	assert.IsType(t, &Run{}, DatabaseModels[0])
	assert.IsType(t, &Sample{}, DatabaseModels[1])
}
