// Package orchestrator 向外部传输层发起、取消与轮询等级变更
//
// 每个资源的状态机：
//
//	Idle → InFlight(增长|收缩) → Idle(已提交) | Idle(已取消并回退)
//
// 同一资源任意时刻最多一个进行中的传输。增长请求受每帧字节数与请求数限制，
// 达到上限后推迟到下一轮；收缩只释放内存，从不推迟。
//
// 记账：发起时按目标等级在 budget.Tracker 中登记，完成或取消时注销。
package orchestrator
