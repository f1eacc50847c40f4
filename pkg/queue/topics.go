package queue

// 主题命名规范：mm.<域>.<动作>，尽量稳定且向后兼容.
// 域：file(远端文件存储)、metric(系统指标)
// 动作：uploaded/deleted/moved/accessed/sampled

const (
	// 文件存储领域.
	TopicFileUploaded = "mm.file.uploaded" // 文件已上传到远端存储
	TopicFileDeleted  = "mm.file.deleted"  // 文件或目录已从远端删除
	TopicFileMoved    = "mm.file.moved"    // 远端路径变更（移动/重命名）
	TopicFileAccessed = "mm.file.accessed" // 文件被下载（用于热点统计）

	// 指标领域.
	TopicMetricSampled = "mm.metric.sampled" // 系统资源快照已写入数据库
)

// 主题分组，用于批量操作或权限控制.
var (
	// 文件存储相关主题集合.
	FileTopics = []string{
		TopicFileUploaded, TopicFileDeleted,
		TopicFileMoved, TopicFileAccessed,
	}

	// 指标相关主题集合.
	MetricTopics = []string{
		TopicMetricSampled,
	}
)
