package jobs

// 任务名称常量，便于统一管理与引用.
const (
	JobStagingCleanMorning = "staging.clean.morning"
	JobStagingCleanEvening = "staging.clean.evening"
	JobMetricPruneDaily    = "metric.prune.daily"
)

// Cron 表达式常量（可选，但推荐一并集中管理）.
const (
	CronStagingCleanMorning = "0 7 * * *"
	CronStagingCleanEvening = "0 19 * * *"
	CronMetricPruneDaily    = "10 2 * * *"
)
