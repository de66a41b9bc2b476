// Package streaming 实现流式管理器（宿主持有的上下文对象）
//
// Manager 把各个核心组件串成一次处理轮次：
//
//	StageCollect   同步资源表，轮询传输状态，快照调度输入（可分多帧）
//	StageSchedule  解析视点，更新距离修正，派发调度任务
//	StageApply     等待调度结果，应用建议，运行预算分配
//
// 游标 Cursor 记录当前阶段与采集位置，增量模式下每次 Tick 从游标处继续。
// exhaustive 模式在一次 Tick 内同步跑完整个轮次，并关闭节流与最小请求限制。
//
// 所有宿主调用都由 Manager 的互斥锁串行化；调度工作协程只读取不可变的任务快照。
//
// # 快速开始
//
//	mgr, err := streaming.New(cfg, transfer, pool,
//	    streaming.WithEventBus(bus),
//	    streaming.WithReporter(collector))
//	if err != nil {
//	    return err
//	}
//	defer mgr.Close()
//
//	mgr.RegisterResource(res)
//	mgr.AddLevel("level-0", instances)
//
//	for range frames {
//	    mgr.SubmitView(cameraPos, 1280, 1500, 1, false, 0)
//	    if err := mgr.Tick(ctx, dt, false); err != nil {
//	        return err
//	    }
//	}
package streaming
