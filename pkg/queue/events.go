package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishFileUploaded 发布 mm.file.uploaded 事件。
// 上传成功后通知下游流程（统计、审计等）。可通过可选项 opts 注入 TraceID、Producer 等头部信息。
func PublishFileUploaded(pub message.Publisher, payload FileUploadedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileUploaded, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFileUploaded, msg)
}

// ParseFileUploaded 将 Watermill 消息解析为强类型 Envelope（FileUploadedPayload）。
func ParseFileUploaded(msg *message.Message) (Message[FileUploadedPayload], error) {
	return ParseWatermillMessage[FileUploadedPayload](msg)
}

// PublishFileDeleted 发布 mm.file.deleted 事件。
func PublishFileDeleted(pub message.Publisher, payload FileDeletedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileDeleted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFileDeleted, msg)
}

// PublishFileMoved 发布 mm.file.moved 事件。
func PublishFileMoved(pub message.Publisher, payload FileMovedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileMoved, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFileMoved, msg)
}

// PublishFileAccessed 发布 mm.file.accessed 事件。
func PublishFileAccessed(pub message.Publisher, payload FileAccessedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicFileAccessed, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicFileAccessed, msg)
}

// PublishMetricSampled 发布 mm.metric.sampled 事件。
func PublishMetricSampled(pub message.Publisher, payload MetricSampledPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicMetricSampled, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicMetricSampled, msg)
}
