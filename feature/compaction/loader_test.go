package compaction

import (
	"testing"

	"parquet-compactor/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	svc := newTestService(t, new(mocks.Client))
	feature := NewFeature(svc, zap.NewNop())

	assert.Equal(t, "compaction", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
