package service

import (
	"context"
	"testing"
	"time"

	"github.com/bedrib/mediamover/pkg/internal/model"
)

// seedUploads 写入固定的上传记录用于统计断言.
func seedUploads(t *testing.T, svc *DashboardService) {
	t.Helper()

	uploads := []model.FileUpload{
		{Filename: "a.jpg", Size: 100, Status: model.UploadStatusSuccess, UploadPath: "/a.jpg"},
		{Filename: "b.mp4", Size: 300, Status: model.UploadStatusSuccess, UploadPath: "/b.mp4"},
		{Filename: "c.bin", Size: 50, Status: model.UploadStatusFailed, UploadPath: "/c.bin", ErrorMessage: "boom"},
		{Filename: "d.txt", Size: 10, Status: model.UploadStatusPending, UploadPath: "/d.txt"},
	}

	if err := svc.dbClient.GetDB().Create(&uploads).Error; err != nil {
		t.Fatalf("seed uploads: %v", err)
	}
}

// TestDashboardStats 测试总览统计的计数、存储量与成功率口径.
func TestDashboardStats(t *testing.T) {
	svc := &DashboardService{dbClient: newTestDB(t)}
	seedUploads(t, svc)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalUploads != 4 {
		t.Errorf("total uploads = %d, want 4", stats.TotalUploads)
	}

	// 只有 success 记录计入存储量
	if stats.TotalStorageUsed != 400 {
		t.Errorf("total storage = %v, want 400", stats.TotalStorageUsed)
	}

	if stats.SuccessRate != 50 {
		t.Errorf("success rate = %v, want 50", stats.SuccessRate)
	}

	if len(stats.RecentUploads) != 4 {
		t.Errorf("recent uploads = %d, want 4", len(stats.RecentUploads))
	}

	// Stats 每次调用都会落一条系统指标
	var count int64
	if err := svc.dbClient.GetDB().Model(&model.SystemMetric{}).Count(&count).Error; err != nil {
		t.Fatalf("count metrics: %v", err)
	}

	if count != 1 {
		t.Errorf("system metric rows = %d, want 1", count)
	}
}

// TestDashboardStatsEmpty 测试没有上传记录时成功率为 0 而不是除零.
func TestDashboardStatsEmpty(t *testing.T) {
	svc := &DashboardService{dbClient: newTestDB(t)}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.TotalUploads != 0 || stats.SuccessRate != 0 || stats.TotalStorageUsed != 0 {
		t.Errorf("unexpected stats for empty table: %+v", stats)
	}
}

// TestUploadsPagination 测试 skip/limit 分页.
func TestUploadsPagination(t *testing.T) {
	svc := &DashboardService{dbClient: newTestDB(t)}
	seedUploads(t, svc)

	page, err := svc.Uploads(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("uploads: %v", err)
	}

	if len(page) != 2 {
		t.Errorf("page size = %d, want 2", len(page))
	}

	// limit<=0 使用默认 limit
	all, err := svc.Uploads(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("uploads default limit: %v", err)
	}

	if len(all) != 4 {
		t.Errorf("default page size = %d, want 4", len(all))
	}
}

// TestFailedUploads 测试失败记录过滤.
func TestFailedUploads(t *testing.T) {
	svc := &DashboardService{dbClient: newTestDB(t)}
	seedUploads(t, svc)

	failed, err := svc.FailedUploads(context.Background())
	if err != nil {
		t.Fatalf("failed uploads: %v", err)
	}

	if len(failed) != 1 || failed[0].Filename != "c.bin" {
		t.Errorf("unexpected failed uploads: %+v", failed)
	}
}

// TestMetricsSince 测试按时间窗口过滤指标历史.
func TestMetricsSince(t *testing.T) {
	svc := &DashboardService{dbClient: newTestDB(t)}
	gdb := svc.dbClient.GetDB()

	old := model.SystemMetric{CPUUsage: 1, CreatedAt: time.Now().UTC().Add(-48 * time.Hour)}
	recent := model.SystemMetric{CPUUsage: 2, CreatedAt: time.Now().UTC()}

	if err := gdb.Create(&old).Error; err != nil {
		t.Fatalf("seed old metric: %v", err)
	}

	if err := gdb.Create(&recent).Error; err != nil {
		t.Fatalf("seed recent metric: %v", err)
	}

	got, err := svc.MetricsSince(context.Background(), 24)
	if err != nil {
		t.Fatalf("metrics since: %v", err)
	}

	if len(got) != 1 || got[0].CPUUsage != 2 {
		t.Errorf("unexpected metrics: %+v", got)
	}
}
