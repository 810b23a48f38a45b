package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/event_bus"
)

// Scheduler snapshots the CSV data directory on a cron schedule. A snapshot
// is only taken when a table changed since the previous one.
type Scheduler struct {
	dataDir   string
	backupDir string
	schedule  string
	cron      *cron.Cron
	dirty     atomic.Bool
}

func NewScheduler(bus *event_bus.EventBus, dataDir, backupDir, schedule string) *Scheduler {
	s := &Scheduler{
		dataDir:   dataDir,
		backupDir: backupDir,
		schedule:  schedule,
		cron:      cron.New(),
	}
	bus.Subscribe(event_bus.TableChanged, func(event event_bus.Event) {
		s.dirty.Store(true)
	})
	return s
}

func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.Run(); err != nil {
			log.Errorf("backup failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	log.Infof("Backup scheduler started with schedule %q", s.schedule)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Run takes a snapshot now if anything changed since the last one.
func (s *Scheduler) Run() error {
	if !s.dirty.CompareAndSwap(true, false) {
		log.Debug("No changes since last backup, skipping snapshot")
		return nil
	}

	target := filepath.Join(s.backupDir, time.Now().Format("20060102-150405"))
	if err := os.MkdirAll(target, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	files, err := os.ReadDir(s.dataDir)
	if err != nil {
		return fmt.Errorf("failed to read data directory: %w", err)
	}

	copied := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".csv") {
			continue
		}
		src := filepath.Join(s.dataDir, file.Name())
		dst := filepath.Join(target, file.Name())
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("failed to back up %s: %w", file.Name(), err)
		}
		copied++
	}

	log.Infof("Backed up %d table file(s) to %s", copied, target)
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
