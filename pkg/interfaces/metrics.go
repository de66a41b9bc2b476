// Package interfaces 定义 go-lodstream 公共接口
//
// 本文件定义指标上报接口。
package interfaces

import (
	"time"

	"github.com/dep2p/go-lodstream/pkg/types"
)

// Reporter 流式统计上报
//
// 实现必须是并发安全且非阻塞的。
type Reporter interface {
	// ReportPass 上报一次完整轮次的统计
	ReportPass(stats types.Stats)

	// ReportTransfer 上报一次已完成传输的延迟
	ReportTransfer(class types.ResourceClass, latency time.Duration)

	// ReportRejected 上报一次被外部层拒绝的请求
	ReportRejected(class types.ResourceClass)
}
