// Package lodstream 提供单内存池的流式资源缓存与驱逐引擎
//
// 宿主为每个资源维护若干细节等级（等级越高占用越多），lodstream 在每一轮中
// 根据视点与放置计算每个资源想要的等级，按优先级排序，在内存池预算内决定
// 升级、降级或保持，并通过宿主提供的传输层发起与取消等级变更。
//
// # 快速开始
//
//	import "github.com/dep2p/go-lodstream"
//
//	engine, err := lodstream.Start(ctx,
//	    lodstream.WithPreset(lodstream.PresetDefault),
//	    lodstream.WithTransferLayer(transfer),
//	    lodstream.WithMemoryPool(pool),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer engine.Close()
//
//	engine.RegisterResource(res)
//	engine.AddLevel("level-0", instances)
//
//	// 每帧
//	engine.SubmitView(origin, 1920, 1920, 1, false, 0)
//	engine.Tick(ctx, dt, false)
//
// # 组件结构
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│  Engine（宿主门面）                                               │
//	├─────────────────────────────────────────────────────────────────┤
//	│  streaming.Manager（上下文对象，可恢复的轮次游标）                   │
//	│    ViewAggregator → ResourceRegistry → HeuristicEngine            │
//	│    → PriorityScheduler → BudgetAllocator → Orchestrator           │
//	├─────────────────────────────────────────────────────────────────┤
//	│  EventBus · Metrics · Introspect                                 │
//	└─────────────────────────────────────────────────────────────────┘
//
// # 外部协作者
//
// 宿主必须提供 TransferLayer；MemoryPool 可选，为空时按无限池处理。
//
// # 配置
//
// 配置来源按优先级从低到高：默认值、预设、配置文件、LODSTREAM_* 环境变量、
// 显式 Option。
package lodstream
