// Package scheduler 实现优先级调度
//
// 调度器在计算角色上运行：输入一个不可变的 Job（资源快照、视点、放置快照），
// 对每个资源运行启发式引擎、计算优先级，并输出按优先级降序排列的候选列表与聚合统计。
//
// # 并行
//
// 评估按资源切片均分给 Workers 个 goroutine（errgroup），每个 goroutine 只写自己的区间，
// 统计在各自区间内累加后合并。
//
// # 异步
//
//	pending := s.Start(ctx, job)   // 后台运行
//	...                            // 控制角色继续处理其他工作
//	res, err := pending.Wait(ctx)  // 等待结果
//
// Run 同步执行，用于穷尽模式。
package scheduler
