// Package jobs 注册后台定时任务.
package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/bedrib/mediamover/pkg/internal/service"
	nlog "github.com/bedrib/mediamover/pkg/log"
	"github.com/bedrib/mediamover/pkg/scheduler"
)

// metricSamplerJob 系统指标采样任务名.
const metricSamplerJob = "system-metric-sampler"

// RegisterMetricSampler 注册系统资源采样任务，按固定间隔落一条指标记录.
// ctx 必须携带已初始化的 storage manager.
func RegisterMetricSampler(sched *scheduler.Scheduler, ctx context.Context, interval time.Duration) error {
	svc := service.NewDashboardService(ctx)

	_, err := sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if _, err := svc.SampleSystemMetric(ctx); err != nil {
				nlog.Logger().Warn().Err(err).Msg("sample system metric failed")
			}
		}),
		gocron.WithName(metricSamplerJob),
	)
	if err != nil {
		return err
	}

	nlog.Logger().Info().Dur("interval", interval).Msg("registered system metric sampler")

	return nil
}
