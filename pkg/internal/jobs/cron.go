package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bedrib/mediamover/pkg/configs"
	ctxPkg "github.com/bedrib/mediamover/pkg/context"
	"github.com/bedrib/mediamover/pkg/internal/service"
	"github.com/bedrib/mediamover/pkg/internal/storage"
	"github.com/bedrib/mediamover/pkg/log"
	"github.com/bedrib/mediamover/pkg/scheduler"
)

const (
	// staleStagingAge 暂存目录超过该时长未更新即视为遗留垃圾.
	staleStagingAge = time.Hour

	// metricRetentionDays 系统指标历史保留天数.
	metricRetentionDays = 30
)

// RegisterCronJobs 配置业务定时任务：
//   - 每天 07:00 和 19:00 清理遗留的上传暂存目录
//   - 每天 02:10 删除 30 天前的系统指标历史
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于 service 使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	_ = sched.AddCron(JobStagingCleanMorning, CronStagingCleanMorning, func(ctx context.Context) {
		runStagingClean(ctx)
	}, baseCtx)

	_ = sched.AddCron(JobStagingCleanEvening, CronStagingCleanEvening, func(ctx context.Context) {
		runStagingClean(ctx)
	}, baseCtx)

	_ = sched.AddCron(JobMetricPruneDaily, CronMetricPruneDaily, func(ctx context.Context) {
		runMetricPrune(ctx)
	}, baseCtx)

	return nil
}

// runStagingClean 删除暂存根目录下长时间未更新的子目录.
// 正常流程中每次上传和下载结束都会自行清理，这里兜底处理进程异常退出留下的残骸.
func runStagingClean(ctx context.Context) {
	l := log.Logger().With().Str("job", "staging.clean").Logger()

	base := configs.GetConfig().Rclone.StagingDir

	entries, err := os.ReadDir(base)
	if err != nil {
		if !os.IsNotExist(err) {
			l.Error().Err(err).Str("dir", base).Msg("read staging dir failed")
		}

		return
	}

	cutoff := time.Now().Add(-staleStagingAge)
	removed := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		info, e := entry.Info()
		if e != nil || info.ModTime().After(cutoff) {
			continue
		}

		dir := filepath.Join(base, entry.Name())
		if e := os.RemoveAll(dir); e != nil {
			l.Error().Err(e).Str("dir", dir).Msg("remove stale staging dir failed")
			continue
		}

		removed++
	}

	if removed > 0 {
		l.Info().Int("removed", removed).Msg("cleaned stale staging dirs")
	}
}

// runMetricPrune 删除保留期之前的系统指标记录.
func runMetricPrune(ctx context.Context) {
	l := log.Logger().With().Str("job", "metric.prune").Logger()

	before := time.Now().UTC().AddDate(0, 0, -metricRetentionDays)

	svc := service.NewDashboardService(ctx)

	n, err := svc.PruneMetrics(ctx, before)
	if err != nil {
		l.Error().Err(err).Msg("prune metrics failed")
		return
	}

	if n > 0 {
		l.Info().Int64("affected", n).Time("before", before).Msg("pruned metric history")
	}
}
