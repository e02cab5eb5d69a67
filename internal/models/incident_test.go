package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscalate_RaisesSeverityAndUrgency(t *testing.T) {
	incident := &Incident{
		Severity:     SeverityMedium,
		UrgencyLevel: 5,
	}

	// Первая эскалация: уровень 1, medium еще не повышается
	assert.True(t, incident.Escalate())
	assert.Equal(t, 1, incident.EscalationLevel)
	assert.Equal(t, SeverityMedium, incident.Severity)
	assert.Equal(t, 7, incident.UrgencyLevel)

	// Вторая эскалация: medium -> high
	assert.True(t, incident.Escalate())
	assert.Equal(t, 2, incident.EscalationLevel)
	assert.Equal(t, SeverityHigh, incident.Severity)
	assert.Equal(t, 9, incident.UrgencyLevel)

	// Третья эскалация: high -> critical, срочность упирается в 10
	assert.True(t, incident.Escalate())
	assert.Equal(t, 3, incident.EscalationLevel)
	assert.Equal(t, SeverityCritical, incident.Severity)
	assert.Equal(t, 10, incident.UrgencyLevel)
}

func TestEscalate_StopsAtMaxLevel(t *testing.T) {
	incident := &Incident{
		Severity:     SeverityMedium,
		UrgencyLevel: 5,
	}

	for i := 0; i < MaxEscalationLevel; i++ {
		assert.True(t, incident.Escalate())
	}
	assert.Equal(t, MaxEscalationLevel, incident.EscalationLevel)

	// На пределе - no-op
	assert.False(t, incident.Escalate())
	assert.Equal(t, MaxEscalationLevel, incident.EscalationLevel)
	assert.Equal(t, SeverityCritical, incident.Severity)
	assert.Equal(t, 10, incident.UrgencyLevel)
}

func TestEscalate_LowSeverityNeverPromoted(t *testing.T) {
	incident := &Incident{
		Severity:     SeverityLow,
		UrgencyLevel: 1,
	}

	for i := 0; i < MaxEscalationLevel; i++ {
		incident.Escalate()
	}

	assert.Equal(t, SeverityLow, incident.Severity)
	assert.Equal(t, 10, incident.UrgencyLevel)
}
