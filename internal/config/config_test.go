package config

import (
	"testing"

	"github.com/destrak/novedad-genomica/internal/errs"
	"github.com/stretchr/testify/assert"
)

func TestValidateMinimize(t *testing.T) {
	good := Config{InputDir: "in", OutputDir: "out", K: 21, W: 11}
	assert.NoError(t, good.ValidateMinimize())

	bad := good
	bad.K = 0
	assert.True(t, errs.Is(bad.ValidateMinimize(), errs.BadConfig))

	bad = good
	bad.K = 40 // 2*40 > 64
	assert.True(t, errs.Is(bad.ValidateMinimize(), errs.BadConfig))

	bad = good
	bad.InputDir = ""
	assert.Error(t, bad.ValidateMinimize())
}

func TestValidateSketch(t *testing.T) {
	good := Config{InputDir: "in", OutputDir: "out", P: 14}
	assert.NoError(t, good.ValidateSketch())

	bad := good
	bad.P = 3
	assert.True(t, errs.Is(bad.ValidateSketch(), errs.BadConfig))

	bad = good
	bad.P = 19
	assert.Error(t, bad.ValidateSketch())
}

func TestValidateCatalogue(t *testing.T) {
	good := Config{InputDir: "in", OutputDir: "out.hll", N: 5}
	assert.NoError(t, good.ValidateCatalogue())

	bad := good
	bad.N = 0
	assert.Error(t, bad.ValidateCatalogue())
}

func TestValidateCompare(t *testing.T) {
	good := Config{RPath: "r.hll", SDir: "pool", UsedList: "used.txt", CSVOut: "out.csv"}
	assert.NoError(t, good.ValidateCompare())

	bad := good
	bad.CSVOut = ""
	assert.Error(t, bad.ValidateCompare())
}
