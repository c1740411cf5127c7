package handlers

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunrk/campusvibe/internal/models"
)

func sampleRegistration() *models.Registration {
	return &models.Registration{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		EventID: uuid.New(),
	}
}

func TestTicketDataRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	registration := sampleRegistration()

	qrData := generateTicketData(registration)

	extracted, err := extractRegistrationID(qrData)
	require.NoError(t, err)
	assert.Equal(t, registration.ID, extracted)
	assert.True(t, validateTicketSignature(registration, qrData))
}

func TestTicketSignatureRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	registration := sampleRegistration()

	qrData := generateTicketData(registration)

	other := sampleRegistration()
	assert.False(t, validateTicketSignature(other, qrData))

	forged := fmt.Sprintf("registration:%s;event:%s;signature:%s",
		registration.ID, registration.EventID, strings.Repeat("ab", 32))
	assert.False(t, validateTicketSignature(registration, forged))
}

func TestTicketSignatureDependsOnSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	registration := sampleRegistration()
	qrData := generateTicketData(registration)

	t.Setenv("JWT_SECRET", "rotated-secret")
	assert.False(t, validateTicketSignature(registration, qrData))
}

func TestExtractRegistrationIDRejectsMalformedData(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	for _, data := range []string{
		"",
		"registration:not-a-uuid;event:x;signature:y",
		"ticket:abc;event:def;signature:ghi",
		"registration:" + uuid.NewString(),
	} {
		_, err := extractRegistrationID(data)
		assert.Error(t, err, "data %q", data)
	}
}
