package service

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/bedrib/mediamover/pkg/configs"
	ctxPkg "github.com/bedrib/mediamover/pkg/context"
	"github.com/bedrib/mediamover/pkg/internal/model"
	"github.com/bedrib/mediamover/pkg/internal/storage/db"
	"github.com/bedrib/mediamover/pkg/internal/storage/mq"
	"github.com/bedrib/mediamover/pkg/internal/types"
	nlog "github.com/bedrib/mediamover/pkg/log"
	"github.com/bedrib/mediamover/pkg/queue"
)

const (
	recentUploadsLimit  = 10
	defaultUploadsLimit = 100
	percentBase         = 100
)

// DashboardService 提供上传统计与系统资源指标.
type DashboardService struct {
	dbClient *db.Client
	mqClient *mq.Client
}

// NewDashboardService 从 context 获取依赖实例.
func NewDashboardService(c context.Context) *DashboardService {
	dbc := ctxPkg.GetDBClient(c)
	mqc := ctxPkg.GetMQClient(c)

	if dbc == nil || dbc.DB == nil || mqc == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &DashboardService{dbClient: dbc, mqClient: mqc}
}

// Stats 汇总仪表盘总览数据.
// 每次查询都采一次系统资源快照并落库，指标历史由此累积.
func (s *DashboardService) Stats(ctx context.Context) (*types.DashboardStats, error) {
	dbx := s.dbClient.GetDB().WithContext(ctx)

	var total, successful int64
	if err := dbx.Model(&model.FileUpload{}).Count(&total).Error; err != nil {
		return nil, err
	}

	if err := dbx.Model(&model.FileUpload{}).
		Where("status = ?", model.UploadStatusSuccess).
		Count(&successful).Error; err != nil {
		return nil, err
	}

	successRate := 0.0
	if total > 0 {
		successRate = float64(successful) / float64(total) * percentBase
	}

	var totalStorage float64
	if err := dbx.Model(&model.FileUpload{}).
		Where("status = ?", model.UploadStatusSuccess).
		Select("COALESCE(SUM(size),0)").
		Scan(&totalStorage).Error; err != nil {
		return nil, err
	}

	var recent []model.FileUpload
	if err := dbx.Order("created_at DESC").Limit(recentUploadsLimit).Find(&recent).Error; err != nil {
		return nil, err
	}

	metric, err := s.SampleSystemMetric(ctx)
	if err != nil {
		return nil, err
	}

	return &types.DashboardStats{
		TotalUploads:     total,
		TotalStorageUsed: totalStorage,
		SuccessRate:      successRate,
		RecentUploads:    recent,
		SystemMetrics:    *metric,
	}, nil
}

// Uploads 分页返回上传记录.
func (s *DashboardService) Uploads(ctx context.Context, skip, limit int) ([]model.FileUpload, error) {
	if limit <= 0 {
		limit = defaultUploadsLimit
	}

	var uploads []model.FileUpload

	err := s.dbClient.GetDB().WithContext(ctx).
		Offset(skip).Limit(limit).
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}

	return uploads, nil
}

// MetricsSince 返回最近 hours 小时内的系统指标历史.
func (s *DashboardService) MetricsSince(ctx context.Context, hours int) ([]model.SystemMetric, error) {
	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

	var metrics []model.SystemMetric

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("created_at >= ?", since).
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}

	return metrics, nil
}

// FailedUploads 返回所有失败的上传记录.
func (s *DashboardService) FailedUploads(ctx context.Context) ([]model.FileUpload, error) {
	var uploads []model.FileUpload

	err := s.dbClient.GetDB().WithContext(ctx).
		Where("status = ?", model.UploadStatusFailed).
		Find(&uploads).Error
	if err != nil {
		return nil, err
	}

	return uploads, nil
}

// PruneMetrics 删除 before 之前的历史指标记录，返回删除条数.
func (s *DashboardService) PruneMetrics(ctx context.Context, before time.Time) (int64, error) {
	res := s.dbClient.GetDB().WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&model.SystemMetric{})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

// SampleSystemMetric 采集一次主机资源快照并落库.
// 仪表盘查询和定时任务共用此入口.
func (s *DashboardService) SampleSystemMetric(ctx context.Context) (*model.SystemMetric, error) {
	usage, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		return nil, err
	}

	cpuPercents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return nil, err
	}

	cpuUsage := 0.0
	if len(cpuPercents) > 0 {
		cpuUsage = cpuPercents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	metric := model.SystemMetric{
		StorageUsed: float64(usage.Used),
		StorageFree: float64(usage.Free),
		CPUUsage:    cpuUsage,
		MemoryUsage: vm.UsedPercent,
	}

	if err := s.dbClient.GetDB().WithContext(ctx).Create(&metric).Error; err != nil {
		return nil, err
	}

	s.publishMetricSampled(&metric)

	return &metric, nil
}

func (s *DashboardService) publishMetricSampled(metric *model.SystemMetric) {
	if !configs.GetConfig().Events.Enabled {
		return
	}

	pub := s.mqClient.Publisher()
	if pub == nil {
		return
	}

	err := queue.PublishMetricSampled(pub, queue.MetricSampledPayload{
		StorageUsed: metric.StorageUsed,
		StorageFree: metric.StorageFree,
		CPUUsage:    metric.CPUUsage,
		MemoryUsage: metric.MemoryUsage,
	})
	if err != nil {
		nlog.Logger().Warn().Err(err).Msg("publish metric sampled event failed")
	}
}
