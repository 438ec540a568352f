package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/models"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/storage"
)

func TestCleanupJobPrunesOldCodes(t *testing.T) {
	store := storage.NewMemoryStore()

	_, err := store.ReplaceActiveOTP(&models.OTP{
		UserID: "u1", Phone: "+971501234567", Code: "111111",
		ExpiresAt: time.Now().Add(-48 * time.Hour),
	})
	require.NoError(t, err)
	_, err = store.ReplaceActiveOTP(&models.OTP{
		UserID: "u2", Phone: "+971507654321", Code: "222222",
		ExpiresAt: time.Now().Add(models.OTPTTL),
	})
	require.NoError(t, err)

	job := NewCleanupJob(store)
	job.interval = 10 * time.Millisecond
	job.Start()
	defer job.Stop()

	assert.Eventually(t, func() bool {
		old, err := store.GetOTPsByUser("u1")
		return err == nil && len(old) == 0
	}, time.Second, 10*time.Millisecond)

	fresh, err := store.GetOTPsByUser("u2")
	require.NoError(t, err)
	assert.Len(t, fresh, 1, "codes inside the retention window stay")
}
