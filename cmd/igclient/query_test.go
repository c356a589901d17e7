package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igclient/pkg/model"
)

func TestIsNumericID(t *testing.T) {
	assert.True(t, isNumericID("1270593720437182847"))
	assert.True(t, isNumericID("1270593720437182847_3"))
	assert.False(t, isNumericID("BGiDkHAgBF_"))
	assert.False(t, isNumericID("_3"))
	assert.False(t, isNumericID(""))
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, &model.Tag{ID: "1", Name: "youneverknow", MediaCount: 25}))
	assert.JSONEq(t, `{"id":"1","name":"youneverknow","media_count":25}`, buf.String())
}

func TestResumeSkipsPrintedItems(t *testing.T) {
	tests := []struct {
		name  string
		count int
		skip  int
		want  int
	}{
		{"fresh run", 20, 0, 20},
		{"resumed run", 20, 3, 23},
		{"unlimited", -1, 3, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resumeCount(tt.count, tt.skip))
		})
	}

	items := []string{"3", "4", "5"}
	assert.Equal(t, []string{"4", "5"}, dropFirst(items, 1))
	assert.Equal(t, items, dropFirst(items, 0))
	assert.Empty(t, dropFirst(items, 5))
}
