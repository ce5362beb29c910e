package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
)

func TestNewRepositories(t *testing.T) {
	t.Run("creates repositories with nil pool", func(t *testing.T) {
		assert.Nil(t, NewAssessmentRepository(nil).pool)
		assert.Nil(t, NewAuditLogRepository(nil).pool)
		assert.Nil(t, NewBlocklistRepository(nil).pool)
		assert.Nil(t, NewBaseValueRepository(nil).pool)
		assert.Nil(t, NewQuestionRepository(nil).pool)

		rules := NewScoringRuleRepository(nil, valueobject.DefaultScoringRule())
		assert.Equal(t, valueobject.DefaultScoringRule(), rules.fallback)
	})
}

func TestMigrations_Embedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations, MigrationsDir)
	require.NoError(t, err)

	var up, down int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			up++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			down++
		}
	}
	assert.Positive(t, up)
	assert.Equal(t, up, down, "every up migration needs a down migration")

	body, err := fs.ReadFile(Migrations, MigrationsDir+"/000001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), activeIdentityConstraint)
}
