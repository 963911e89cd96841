package cmd

import (
	"errors"
	"fmt"
	"testing"

	"parquet-compactor/feature/compaction"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	_, cfgErr := compaction.ParseGranularity("week")

	assert.Equal(t, 2, exitCode(cfgErr))
	assert.Equal(t, 3, exitCode(errIncomplete))
	assert.Equal(t, 3, exitCode(fmt.Errorf("strict: %w", errIncomplete)))
	assert.Equal(t, 1, exitCode(errors.New("bucket does not exist")))
}

func TestOverrideString(t *testing.T) {
	v := "config"
	overrideString(false, &v, "flag")
	assert.Equal(t, "config", v)
	overrideString(true, &v, "flag")
	assert.Equal(t, "flag", v)
}
