package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStatus(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		threshold int
		want      Status
	}{
		{"above threshold", 10, 5, StatusNormal},
		{"at threshold", 5, 5, StatusNeedRestock},
		{"below threshold", 2, 5, StatusNeedRestock},
		{"zero quantity zero threshold", 0, 0, StatusNeedRestock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStatus(tt.quantity, tt.threshold))
		})
	}
}

func TestNextStatusIn(t *testing.T) {
	tests := []struct {
		name        string
		current     Status
		newQuantity int
		threshold   int
		want        Status
	}{
		{"need_restock moves to restocking even below threshold", StatusNeedRestock, 3, 5, StatusRestocking},
		{"need_restock moves to restocking above threshold", StatusNeedRestock, 20, 5, StatusRestocking},
		{"restocking completes once above threshold", StatusRestocking, 8, 5, StatusNormal},
		{"restocking stays while at threshold", StatusRestocking, 5, 5, StatusRestocking},
		{"restocking stays while below threshold", StatusRestocking, 4, 5, StatusRestocking},
		{"normal unaffected by stock-in", StatusNormal, 100, 5, StatusNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStatusIn(tt.current, tt.newQuantity, tt.threshold))
		})
	}
}

func TestNextStatusOut(t *testing.T) {
	tests := []struct {
		name        string
		current     Status
		newQuantity int
		threshold   int
		want        Status
	}{
		{"drop to threshold flags restock", StatusNormal, 5, 5, StatusNeedRestock},
		{"drop below threshold flags restock", StatusNormal, 1, 5, StatusNeedRestock},
		{"above threshold keeps status", StatusNormal, 6, 5, StatusNormal},
		{"restocking above threshold keeps restocking", StatusRestocking, 9, 5, StatusRestocking},
		{"restocking dropping below flags restock", StatusRestocking, 2, 5, StatusNeedRestock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStatusOut(tt.current, tt.newQuantity, tt.threshold))
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"normal", "need_restock", "restocking"} {
		status, err := ParseStatus(valid)
		assert.NoError(t, err)
		assert.Equal(t, Status(valid), status)
	}

	_, err := ParseStatus("discontinued")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParseOperationType(t *testing.T) {
	for _, valid := range []string{"in", "out"} {
		opType, err := ParseOperationType(valid)
		assert.NoError(t, err)
		assert.Equal(t, OperationType(valid), opType)
	}

	_, err := ParseOperationType("transfer")
	assert.ErrorIs(t, err, ErrInvalidOperationType)
}
