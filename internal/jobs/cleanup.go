package jobs

import (
	"time"

	"go.uber.org/zap"

	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/logger"
	"github.com/ziairshad/wheel-deals-marketplace-sub000/internal/storage"
)

// retention keeps expired codes around for a while so support can audit
// recent verification attempts before rows disappear.
const retention = 24 * time.Hour

// CleanupJob prunes long-expired OTP rows. The verification flow itself
// never deletes records; this job is the external consumer that does.
type CleanupJob struct {
	store    storage.Store
	interval time.Duration
	stop     chan struct{}
}

// NewCleanupJob creates a new cleanup job scheduler
func NewCleanupJob(store storage.Store) *CleanupJob {
	return &CleanupJob{
		store:    store,
		interval: time.Hour,
		stop:     make(chan struct{}),
	}
}

// Start begins the periodic pruning loop
func (j *CleanupJob) Start() {
	logger.Info("starting OTP cleanup job", zap.Duration("interval", j.interval))
	go j.run()
}

// Stop halts the pruning loop
func (j *CleanupJob) Stop() {
	close(j.stop)
}

func (j *CleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-retention)
			removed, err := j.store.DeleteExpiredOTPs(cutoff)
			if err != nil {
				logger.Error("OTP cleanup failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("pruned expired OTP records", zap.Int64("removed", removed))
			}
		case <-j.stop:
			return
		}
	}
}
